package database

import (
	"context"
	"fmt"
	"strings"
)

// Dates are stored as epoch milliseconds in BIGINT columns on both drivers.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS collection (
		id {{pk}},
		display_name TEXT,
		account_name TEXT,
		account_type TEXT NOT NULL DEFAULT 'LOCAL',
		color BIGINT,
		read_only BOOLEAN NOT NULL DEFAULT FALSE,
		supports_vjournal BOOLEAN NOT NULL DEFAULT TRUE,
		supports_vtodo BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS icalobject (
		id {{pk}},
		module TEXT NOT NULL,
		component TEXT NOT NULL,
		summary TEXT,
		description TEXT,
		location TEXT,
		url TEXT,
		contact TEXT,
		dtstart BIGINT,
		dtstart_timezone TEXT,
		due BIGINT,
		due_timezone TEXT,
		completed BIGINT,
		completed_timezone TEXT,
		status TEXT,
		classification TEXT,
		percent INTEGER,
		priority INTEGER,
		color BIGINT,
		collection_id BIGINT NOT NULL REFERENCES collection (id) ON DELETE CASCADE,
		uid TEXT NOT NULL UNIQUE,
		sequence BIGINT NOT NULL DEFAULT 0,
		dirty BOOLEAN NOT NULL DEFAULT TRUE,
		deleted BOOLEAN NOT NULL DEFAULT FALSE,
		created BIGINT NOT NULL,
		last_modified BIGINT NOT NULL,
		dtstamp BIGINT NOT NULL,
		rrule TEXT,
		rdate TEXT,
		exdate TEXT,
		recurid BIGINT,
		recur_original_icalobject_id BIGINT REFERENCES icalobject (id) ON DELETE SET NULL,
		is_recur_linked_instance BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS icalobject_module_idx ON icalobject (module)`,
	`CREATE INDEX IF NOT EXISTS icalobject_collection_idx ON icalobject (collection_id)`,
	`CREATE INDEX IF NOT EXISTS icalobject_recur_original_idx ON icalobject (recur_original_icalobject_id)`,
	`CREATE TABLE IF NOT EXISTS category (
		id {{pk}},
		icalobject_id BIGINT NOT NULL REFERENCES icalobject (id) ON DELETE CASCADE,
		text TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS category_icalobject_idx ON category (icalobject_id)`,
	`CREATE TABLE IF NOT EXISTS attachment (
		id {{pk}},
		icalobject_id BIGINT NOT NULL REFERENCES icalobject (id) ON DELETE CASCADE,
		uri TEXT,
		fmttype TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS attachment_icalobject_idx ON attachment (icalobject_id)`,
	`CREATE TABLE IF NOT EXISTS attendee (
		id {{pk}},
		icalobject_id BIGINT NOT NULL REFERENCES icalobject (id) ON DELETE CASCADE,
		caladdress TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS attendee_icalobject_idx ON attendee (icalobject_id)`,
	`CREATE TABLE IF NOT EXISTS comment (
		id {{pk}},
		icalobject_id BIGINT NOT NULL REFERENCES icalobject (id) ON DELETE CASCADE,
		text TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS comment_icalobject_idx ON comment (icalobject_id)`,
	`CREATE TABLE IF NOT EXISTS alarm (
		id {{pk}},
		icalobject_id BIGINT NOT NULL REFERENCES icalobject (id) ON DELETE CASCADE,
		trigger_relative_duration TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS alarm_icalobject_idx ON alarm (icalobject_id)`,
	`CREATE TABLE IF NOT EXISTS resource (
		id {{pk}},
		icalobject_id BIGINT NOT NULL REFERENCES icalobject (id) ON DELETE CASCADE,
		text TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS resource_icalobject_idx ON resource (icalobject_id)`,
	`CREATE TABLE IF NOT EXISTS relatedto (
		id {{pk}},
		icalobject_id BIGINT NOT NULL REFERENCES icalobject (id) ON DELETE CASCADE,
		linked_icalobject_id BIGINT NOT NULL REFERENCES icalobject (id) ON DELETE CASCADE,
		text TEXT,
		reltype TEXT NOT NULL,
		UNIQUE (icalobject_id, linked_icalobject_id, reltype)
	)`,
	`CREATE INDEX IF NOT EXISTS relatedto_linked_idx ON relatedto (linked_icalobject_id)`,
	`CREATE INDEX IF NOT EXISTS relatedto_text_idx ON relatedto (text)`,
	`DROP VIEW IF EXISTS ical4list`,
	ical4listView,
}

// A parent is found through the PARENT row whose text holds the parent's UID.
const ical4listView = `CREATE VIEW ical4list AS SELECT
	main_icalobject.id,
	main_icalobject.module,
	main_icalobject.component,
	main_icalobject.summary,
	main_icalobject.description,
	main_icalobject.location,
	main_icalobject.url,
	main_icalobject.contact,
	main_icalobject.dtstart,
	main_icalobject.dtstart_timezone,
	main_icalobject.due,
	main_icalobject.due_timezone,
	main_icalobject.completed,
	main_icalobject.completed_timezone,
	main_icalobject.status,
	main_icalobject.classification,
	main_icalobject.percent,
	main_icalobject.priority,
	main_icalobject.created,
	main_icalobject.last_modified,
	main_icalobject.dtstamp,
	main_icalobject.sequence,
	main_icalobject.uid,
	collection.color AS color_collection,
	main_icalobject.color AS color_item,
	main_icalobject.collection_id,
	collection.account_name,
	collection.display_name AS collection_display_name,
	main_icalobject.deleted,
	(main_icalobject.dirty AND collection.account_type <> 'LOCAL') AS upload_pending,
	main_icalobject.recurid,
	main_icalobject.recur_original_icalobject_id,
	(main_icalobject.rrule IS NOT NULL) AS is_recurring_original,
	(main_icalobject.recurid IS NOT NULL) AS is_recurring_instance,
	main_icalobject.is_recur_linked_instance,
	EXISTS (SELECT 1 FROM relatedto sub_rel INNER JOIN icalobject sub_ical ON sub_rel.text = sub_ical.uid AND sub_ical.module = 'JOURNAL'
		WHERE sub_rel.icalobject_id = main_icalobject.id AND sub_rel.reltype = 'PARENT') AS is_child_of_journal,
	EXISTS (SELECT 1 FROM relatedto sub_rel INNER JOIN icalobject sub_ical ON sub_rel.text = sub_ical.uid AND sub_ical.module = 'NOTE'
		WHERE sub_rel.icalobject_id = main_icalobject.id AND sub_rel.reltype = 'PARENT') AS is_child_of_note,
	EXISTS (SELECT 1 FROM relatedto sub_rel INNER JOIN icalobject sub_ical ON sub_rel.text = sub_ical.uid AND sub_ical.module = 'TODO'
		WHERE sub_rel.icalobject_id = main_icalobject.id AND sub_rel.reltype = 'PARENT') AS is_child_of_todo,
	(SELECT sub_rel.text FROM relatedto sub_rel INNER JOIN icalobject sub_ical ON sub_rel.linked_icalobject_id = sub_ical.id
		AND sub_ical.component = 'VTODO' AND sub_ical.deleted = FALSE
		WHERE sub_rel.icalobject_id = main_icalobject.id AND sub_rel.reltype = 'PARENT' ORDER BY sub_rel.id LIMIT 1) AS vtodo_uid_of_parent,
	(SELECT sub_rel.text FROM relatedto sub_rel INNER JOIN icalobject sub_ical ON sub_rel.linked_icalobject_id = sub_ical.id
		AND sub_ical.component = 'VJOURNAL' AND sub_ical.deleted = FALSE
		WHERE sub_rel.icalobject_id = main_icalobject.id AND sub_rel.reltype = 'PARENT' ORDER BY sub_rel.id LIMIT 1) AS vjournal_uid_of_parent,
	(SELECT {{categories}} FROM category WHERE category.icalobject_id = main_icalobject.id) AS categories,
	(SELECT COUNT(*) FROM icalobject sub_icalobject INNER JOIN relatedto sub_relatedto ON sub_icalobject.id = sub_relatedto.icalobject_id
		AND sub_icalobject.component = 'VTODO' AND sub_relatedto.text = main_icalobject.uid AND sub_relatedto.reltype = 'PARENT'
		AND sub_icalobject.deleted = FALSE) AS num_subtasks,
	(SELECT COUNT(*) FROM icalobject sub_icalobject INNER JOIN relatedto sub_relatedto ON sub_icalobject.id = sub_relatedto.icalobject_id
		AND sub_icalobject.component = 'VJOURNAL' AND sub_relatedto.text = main_icalobject.uid AND sub_relatedto.reltype = 'PARENT'
		AND sub_icalobject.deleted = FALSE) AS num_subnotes,
	(SELECT COUNT(*) FROM attachment WHERE attachment.icalobject_id = main_icalobject.id) AS num_attachments,
	(SELECT COUNT(*) FROM attendee WHERE attendee.icalobject_id = main_icalobject.id) AS num_attendees,
	(SELECT COUNT(*) FROM comment WHERE comment.icalobject_id = main_icalobject.id) AS num_comments,
	(SELECT COUNT(*) FROM relatedto WHERE relatedto.icalobject_id = main_icalobject.id) AS num_related_todos,
	(SELECT COUNT(*) FROM resource WHERE resource.icalobject_id = main_icalobject.id) AS num_resources,
	(SELECT COUNT(*) FROM alarm WHERE alarm.icalobject_id = main_icalobject.id) AS num_alarms,
	(SELECT attachment.uri FROM attachment WHERE attachment.icalobject_id = main_icalobject.id
		AND (attachment.fmttype LIKE 'audio/%' OR attachment.fmttype LIKE 'video/%') ORDER BY attachment.id LIMIT 1) AS audio_attachment,
	collection.read_only AS is_read_only
FROM icalobject main_icalobject
INNER JOIN collection ON main_icalobject.collection_id = collection.id
WHERE main_icalobject.deleted = FALSE AND main_icalobject.rrule IS NULL`

func dialect(driver string) (*strings.Replacer, error) {
	switch driver {
	case DriverSQLite:
		return strings.NewReplacer(
			"{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"{{categories}}", "group_concat(category.text, ', ' ORDER BY category.id)",
		), nil
	case DriverPostgres:
		return strings.NewReplacer(
			"{{pk}}", "BIGSERIAL PRIMARY KEY",
			"{{categories}}", "string_agg(category.text, ', ' ORDER BY category.id)",
		), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
}

// Migrate creates the schema and the list view. It is safe to run on every start.
// A local collection is created when the store has none.
func Migrate(ctx context.Context, db DB) error {
	r, err := dialect(db.Driver())
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, stmt := range schema {
		if _, err := tx.ExecRaw(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var count int64
	if err := tx.Get(ctx, &count, SQL.Select("COUNT(*)").From(CollectionTable)); err != nil {
		return fmt.Errorf("count collections: %w", err)
	}

	if count == 0 {
		qb := SQL.
			Insert(CollectionTable).
			Columns("display_name", "account_name", "account_type").
			Values("Local", "Local", "LOCAL")

		if _, err := tx.Exec(ctx, qb); err != nil {
			return fmt.Errorf("create local collection: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
