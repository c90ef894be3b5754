package icalobject

import "github.com/SergeyKozhin/jtx-board/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var columns = []string{
	"id",
	"module",
	"component",
	"summary",
	"description",
	"location",
	"url",
	"contact",
	"dtstart",
	"dtstart_timezone",
	"due",
	"due_timezone",
	"completed",
	"completed_timezone",
	"status",
	"classification",
	"percent",
	"priority",
	"color",
	"collection_id",
	"uid",
	"sequence",
	"dirty",
	"deleted",
	"created",
	"last_modified",
	"dtstamp",
	"rrule",
	"rdate",
	"exdate",
	"recurid",
	"recur_original_icalobject_id",
	"is_recur_linked_instance",
}

var baseQuery = database.SQL.
	Select(columns...).
	From(database.ICalObjectTable)
