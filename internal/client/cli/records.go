package cli

import (
	"cmp"
	"context"
	"slices"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

// visibleDocs are the documents of the active case plus untagged ones, or
// every document when no case is active.
func (a *App) visibleDocs() []models.Document {
	if c, ok := a.store.ActiveCase(); ok {
		return a.store.DocumentsForCase(c.ID)
	}
	return a.store.Snapshot().Documents
}

// visibleEvents applies the same filter to the timeline, in date order.
func (a *App) visibleEvents() []models.TimelineEvent {
	snap := a.store.Snapshot()
	events := snap.TimelineEvents
	if snap.ActiveCaseID != "" {
		events = slices.DeleteFunc(events, func(e models.TimelineEvent) bool {
			return e.CaseID != "" && e.CaseID != snap.ActiveCaseID
		})
	}
	slices.SortStableFunc(events, func(x, y models.TimelineEvent) int {
		return cmp.Compare(x.Date, y.Date)
	})
	return events
}

func (a *App) Docs(ctx context.Context) error {
	docs := a.visibleDocs()
	if len(docs) == 0 {
		a.printf("No documents. Use 'adddoc' to add one.\n")
		return nil
	}
	for i, d := range docs {
		a.printf("%d. %s  type: %s  date: %s  [%s]\n", i+1, d.Title, orDash(d.Type), orDash(d.Date), shortID(d.ID))
	}
	return nil
}

func (a *App) AddDoc(ctx context.Context) error {
	var d models.Document
	var err error

	if d.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if d.Type, err = getSimpleText(a.reader, "Type (e.g. pdf, report, court order)", a.out); err != nil {
		return err
	}
	if d.Date, err = getSimpleText(a.reader, "Date (YYYY-MM-DD, blank for today)", a.out); err != nil {
		return err
	}
	if d.Content, err = getMultiline(a.reader, "Content or summary", a.out); err != nil {
		return err
	}

	added, err := a.store.AddDocument(d)
	if err != nil {
		return err
	}
	a.printf("Added document %q.\n", added.Title)
	return nil
}

func (a *App) RmDoc(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("rmdoc <n|id>")
	}
	docs := a.visibleDocs()
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	id, err := resolveRef(args[0], ids)
	if err != nil {
		return err
	}
	if err := a.store.RemoveDocument(id); err != nil {
		return err
	}
	a.printf("Document removed.\n")
	return nil
}

func (a *App) Timeline(ctx context.Context) error {
	events := a.visibleEvents()
	if len(events) == 0 {
		a.printf("No events. Use 'addevent' to add one.\n")
		return nil
	}
	for i, e := range events {
		a.printf("%d. %s  %s  [%s]\n", i+1, orDash(e.Date), e.Title, shortID(e.ID))
		if e.Description != "" {
			a.printf("   %s\n", e.Description)
		}
	}
	return nil
}

func (a *App) AddEvent(ctx context.Context) error {
	var e models.TimelineEvent
	var err error

	if e.Date, err = getSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	if e.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if e.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}

	added, err := a.store.AddTimelineEvent(e)
	if err != nil {
		return err
	}
	a.printf("Added event %q.\n", added.Title)
	return nil
}

func (a *App) eventRef(args []string, line string) (models.TimelineEvent, error) {
	if len(args) != 1 {
		return models.TimelineEvent{}, usage(line)
	}
	events := a.visibleEvents()
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	id, err := resolveRef(args[0], ids)
	if err != nil {
		return models.TimelineEvent{}, err
	}
	i := slices.IndexFunc(events, func(e models.TimelineEvent) bool { return e.ID == id })
	return events[i], nil
}

func (a *App) EditEvent(ctx context.Context, args []string) error {
	cur, err := a.eventRef(args, "editevent <n|id>")
	if err != nil {
		return err
	}

	next := cur
	if next.Date, err = getEditedText(a.reader, "Date", cur.Date, a.out); err != nil {
		return err
	}
	if next.Title, err = getEditedText(a.reader, "Title", cur.Title, a.out); err != nil {
		return err
	}
	if next.Description, err = getEditedText(a.reader, "Description", cur.Description, a.out); err != nil {
		return err
	}

	if err := a.store.EditTimelineEvent(cur.ID, next); err != nil {
		return err
	}
	a.printf("Event updated.\n")
	return nil
}

func (a *App) RmEvent(ctx context.Context, args []string) error {
	cur, err := a.eventRef(args, "rmevent <n|id>")
	if err != nil {
		return err
	}
	if err := a.store.RemoveTimelineEvent(cur.ID); err != nil {
		return err
	}
	a.printf("Event removed.\n")
	return nil
}
