package model

import "time"

// ICal4List is one row of the list projection.
type ICal4List struct {
	ID          int64
	Module      Module
	Component   Component
	Summary     string
	Description string
	Location    string
	URL         string
	Contact     string

	Dtstart           *time.Time
	DtstartTimezone   string
	Due               *time.Time
	DueTimezone       string
	Completed         *time.Time
	CompletedTimezone string

	Status         string
	Classification string
	Percent        *int
	Priority       *int

	Created      time.Time
	LastModified time.Time
	Dtstamp      time.Time
	Sequence     int64
	UID          string

	ColorCollection       *int64
	ColorItem             *int64
	CollectionID          int64
	AccountName           string
	CollectionDisplayName string
	Deleted               bool
	UploadPending         bool

	Recurid               *time.Time
	RecurOriginalID       *int64
	IsRecurringOriginal   bool
	IsRecurringInstance   bool
	IsLinkedRecurInstance bool
	IsChildOfJournal      bool
	IsChildOfNote         bool
	IsChildOfTodo         bool
	VTodoUIDOfParent      string
	VJournalUIDOfParent   string
	Categories            string
	NumSubtasks           int64
	NumSubnotes           int64
	NumAttachments        int64
	NumAttendees          int64
	NumComments           int64
	NumRelatedTodos       int64
	NumResources          int64
	NumAlarms             int64
	AudioAttachment       string
	IsReadOnly            bool
}

type DateFilter string

const (
	DateFilterOverdue       DateFilter = "OVERDUE"
	DateFilterDueToday      DateFilter = "DUE_TODAY"
	DateFilterDueTomorrow   DateFilter = "DUE_TOMORROW"
	DateFilterDueFuture     DateFilter = "DUE_FUTURE"
	DateFilterStartInPast   DateFilter = "START_IN_PAST"
	DateFilterStartToday    DateFilter = "START_TODAY"
	DateFilterStartTomorrow DateFilter = "START_TOMORROW"
	DateFilterStartFuture   DateFilter = "START_FUTURE"
	DateFilterNoDatesSet    DateFilter = "NO_DATES_SET"
)

func ParseDateFilter(s string) (DateFilter, error) {
	switch f := DateFilter(s); f {
	case DateFilterOverdue, DateFilterDueToday, DateFilterDueTomorrow, DateFilterDueFuture,
		DateFilterStartInPast, DateFilterStartToday, DateFilterStartTomorrow, DateFilterStartFuture,
		DateFilterNoDatesSet:
		return f, nil
	}
	return "", Invalid("date_filter", ErrInvalidInput, "unknown date filter %q", s)
}

type OrderBy string

const (
	OrderByCreated        OrderBy = "CREATED"
	OrderByLastModified   OrderBy = "LAST_MODIFIED"
	OrderBySummary        OrderBy = "SUMMARY"
	OrderByStart          OrderBy = "START"
	OrderByDue            OrderBy = "DUE"
	OrderByCompleted      OrderBy = "COMPLETED"
	OrderByPriority       OrderBy = "PRIORITY"
	OrderByClassification OrderBy = "CLASSIFICATION"
	OrderByStatus         OrderBy = "STATUS"
	OrderByPercent        OrderBy = "PERCENT"
)

func ParseOrderBy(s string) (OrderBy, error) {
	switch o := OrderBy(s); o {
	case OrderByCreated, OrderByLastModified, OrderBySummary, OrderByStart, OrderByDue,
		OrderByCompleted, OrderByPriority, OrderByClassification, OrderByStatus, OrderByPercent:
		return o, nil
	}
	return "", Invalid("order_by", ErrInvalidInput, "unknown order key %q", s)
}

type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortOrderAsc, SortOrderDesc:
		return o, nil
	}
	return "", Invalid("sort_order", ErrInvalidInput, "unknown sort order %q", s)
}

type GroupBy string

const (
	GroupByStatus         GroupBy = "STATUS"
	GroupByClassification GroupBy = "CLASSIFICATION"
	GroupByPriority       GroupBy = "PRIORITY"
	GroupByStart          GroupBy = "START"
	GroupByDue            GroupBy = "DUE"
)

func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(s); g {
	case GroupByStatus, GroupByClassification, GroupByPriority, GroupByStart, GroupByDue:
		return g, nil
	}
	return "", Invalid("group_by", ErrInvalidInput, "unknown group key %q", s)
}

// OrderBy is the order key a grouping forces as primary sort.
func (g GroupBy) OrderBy() OrderBy {
	switch g {
	case GroupByStatus:
		return OrderByStatus
	case GroupByClassification:
		return OrderByClassification
	case GroupByPriority:
		return OrderByPriority
	case GroupByStart:
		return OrderByStart
	default:
		return OrderByDue
	}
}

// ListFilter describes one list query. It is built per query and never stored.
type ListFilter struct {
	Module          Module
	SearchText      string
	Categories      []string
	StatusJournal   []JournalStatus
	StatusTodo      []TodoStatus
	Classifications []Classification
	Collections     []string
	Accounts        []string
	DateFilters     []DateFilter
	ExcludeDone     bool
	FlatView        bool

	OrderBy    OrderBy
	SortOrder  SortOrder
	OrderBy2   OrderBy
	SortOrder2 SortOrder
	GroupBy    GroupBy

	ShowOneRecurEntryInFuture bool
}

// WithDefaults fills the order keys the list screen starts with.
func (f ListFilter) WithDefaults() ListFilter {
	if f.OrderBy == "" {
		f.OrderBy = OrderByCreated
	}
	if f.SortOrder == "" {
		f.SortOrder = SortOrderAsc
	}
	if f.OrderBy2 == "" {
		f.OrderBy2 = OrderBySummary
	}
	if f.SortOrder2 == "" {
		f.SortOrder2 = SortOrderAsc
	}
	return f
}

type ListGroup struct {
	Key  string
	Rows []*ICal4List
}
