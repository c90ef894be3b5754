package database

import sq "github.com/Masterminds/squirrel"

// SQL строит запросы с плейсхолдерами "?". pgxUtil переписывает их в "$n".
var SQL = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const (
	ICalObjectTable = "icalobject"
	CollectionTable = "collection"
	CategoryTable   = "category"
	AttachmentTable = "attachment"
	AttendeeTable   = "attendee"
	CommentTable    = "comment"
	AlarmTable      = "alarm"
	ResourceTable   = "resource"
	RelatedtoTable  = "relatedto"

	ICal4ListView = "ical4list"
)

// PropertyTables are scoped by icalobject_id and cascade with their entity.
var PropertyTables = []string{
	CategoryTable,
	AttachmentTable,
	AttendeeTable,
	CommentTable,
	AlarmTable,
	ResourceTable,
}

// LocalCollectionID создаётся Migrate в пустой базе.
const LocalCollectionID int64 = 1
