package model

type Module string

const (
	ModuleJournal Module = "JOURNAL"
	ModuleNote    Module = "NOTE"
	ModuleTodo    Module = "TODO"
)

func ParseModule(s string) (Module, error) {
	switch m := Module(s); m {
	case ModuleJournal, ModuleNote, ModuleTodo:
		return m, nil
	}
	return "", Invalid("module", ErrInvalidInput, "unknown module %q", s)
}

// Component returns the iCalendar component every item of the module is stored as.
func (m Module) Component() Component {
	if m == ModuleTodo {
		return ComponentVTodo
	}
	return ComponentVJournal
}

type Component string

const (
	ComponentVJournal Component = "VJOURNAL"
	ComponentVTodo    Component = "VTODO"
)

type Classification string

const (
	ClassificationPublic       Classification = "PUBLIC"
	ClassificationPrivate      Classification = "PRIVATE"
	ClassificationConfidential Classification = "CONFIDENTIAL"
)

func ParseClassification(s string) (Classification, error) {
	switch c := Classification(s); c {
	case ClassificationPublic, ClassificationPrivate, ClassificationConfidential:
		return c, nil
	}
	return "", Invalid("classification", ErrInvalidInput, "unknown classification %q", s)
}

// Status is either a JournalStatus or a TodoStatus. The two domains are
// disjoint and a value is only valid for its own component.
type Status interface {
	Component() Component
	String() string
}

type JournalStatus string

const (
	JournalStatusDraft     JournalStatus = "DRAFT"
	JournalStatusFinal     JournalStatus = "FINAL"
	JournalStatusCancelled JournalStatus = "CANCELLED"
)

func (JournalStatus) Component() Component { return ComponentVJournal }
func (s JournalStatus) String() string    { return string(s) }

type TodoStatus string

const (
	TodoStatusNeedsAction TodoStatus = "NEEDS-ACTION"
	TodoStatusInProcess   TodoStatus = "IN-PROCESS"
	TodoStatusCompleted   TodoStatus = "COMPLETED"
	TodoStatusCancelled   TodoStatus = "CANCELLED"
)

func (TodoStatus) Component() Component { return ComponentVTodo }
func (s TodoStatus) String() string    { return string(s) }

func ParseJournalStatus(s string) (JournalStatus, error) {
	switch st := JournalStatus(s); st {
	case JournalStatusDraft, JournalStatusFinal, JournalStatusCancelled:
		return st, nil
	}
	return "", Invalid("status", ErrStatusDomain, "%q is not a journal status", s)
}

func ParseTodoStatus(s string) (TodoStatus, error) {
	switch st := TodoStatus(s); st {
	case TodoStatusNeedsAction, TodoStatusInProcess, TodoStatusCompleted, TodoStatusCancelled:
		return st, nil
	}
	return "", Invalid("status", ErrStatusDomain, "%q is not a todo status", s)
}

// ParseStatus maps a raw status to the domain of the given component.
// CANCELLED exists in both domains and resolves to the component's own type.
func ParseStatus(c Component, raw string) (Status, error) {
	switch c {
	case ComponentVJournal:
		return ParseJournalStatus(raw)
	case ComponentVTodo:
		return ParseTodoStatus(raw)
	default:
		return nil, Invalid("component", ErrInvalidInput, "unknown component %q", c)
	}
}

type Reltype string

const (
	ReltypeParent  Reltype = "PARENT"
	ReltypeChild   Reltype = "CHILD"
	ReltypeSibling Reltype = "SIBLING"
)

func ParseReltype(s string) (Reltype, error) {
	switch r := Reltype(s); r {
	case ReltypeParent, ReltypeChild, ReltypeSibling:
		return r, nil
	}
	return "", Invalid("reltype", ErrInvalidInput, "unknown reltype %q", s)
}

// Inverse is the reltype seen from the other end of a link.
func (r Reltype) Inverse() Reltype {
	switch r {
	case ReltypeParent:
		return ReltypeChild
	case ReltypeChild:
		return ReltypeParent
	default:
		return r
	}
}

func (r Reltype) String() string {
	return string(r)
}
