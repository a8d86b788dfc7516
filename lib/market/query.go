// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"fmt"

	"github.com/bountyboard-foundation/bountyboard/lib/schema"
	"github.com/bountyboard-foundation/bountyboard/lib/store"
)

// Page selects a window of a listing. A Limit of zero or less means
// the engine's default page limit. Offsets past the end yield an
// empty page.
type Page struct {
	Offset int
	Limit  int
}

func (e *Engine) normalize(page Page) Page {
	if page.Limit <= 0 {
		page.Limit = e.params.DefaultPageLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}

// Queries never ping: a task whose expiry or deadline has passed since
// the last mutating touch still reads in its old state. Callers that
// need current state call Ping first.

// GetTask returns the task record.
func (e *Engine) GetTask(taskID schema.TaskID) (schema.Task, error) {
	task, ok := e.tasks.Get(taskID)
	if !ok {
		return schema.Task{}, fmt.Errorf("get task %q: %w", taskID, store.ErrKeyNotFound)
	}
	return task, nil
}

// ListTasks returns a page of all task IDs, in lexical order.
func (e *Engine) ListTasks(page Page) []schema.TaskID {
	page = e.normalize(page)
	return e.tasks.PageKeys(page.Offset, page.Limit)
}

// ListTasksByCompany returns a page of the task IDs a company owns.
func (e *Engine) ListTasksByCompany(companyID schema.AccountID, page Page) []schema.TaskID {
	page = e.normalize(page)
	return e.byCompany.PageMembers(companyID, page.Offset, page.Limit)
}

// ListInvitedTasks returns a page of the task IDs a user was invited
// to.
func (e *Engine) ListInvitedTasks(userID schema.AccountID, page Page) []schema.TaskID {
	page = e.normalize(page)
	return e.byInvitee.PageMembers(userID, page.Offset, page.Limit)
}

// GetSubmission returns one submitter's submission for a task.
func (e *Engine) GetSubmission(taskID schema.TaskID, userID schema.AccountID) (schema.Submission, error) {
	submission, ok := e.submissions.Get(taskID, userID)
	if !ok {
		return schema.Submission{}, fmt.Errorf("get submission for task %q by %q: %w",
			taskID, userID, store.ErrKeyNotFound)
	}
	return submission, nil
}

// ListSubmissions returns a page of the accounts that have submitted
// work for a task.
func (e *Engine) ListSubmissions(taskID schema.TaskID, page Page) []schema.AccountID {
	page = e.normalize(page)
	return e.submissions.PageInnerKeys(taskID, page.Offset, page.Limit)
}

// IndexSnapshot is the derived index relations recomputed from the
// authoritative task table.
type IndexSnapshot struct {
	// TasksByCompany maps each company to the tasks it owns.
	TasksByCompany map[schema.AccountID][]schema.TaskID

	// TasksByInvitee maps each invited user to the invite-only tasks
	// naming them.
	TasksByInvitee map[schema.AccountID][]schema.TaskID
}

// RebuildIndexes recomputes the derived indices from the task table
// alone, ignoring the incrementally maintained ones. The indices are
// denormalized caches; this is their ground truth.
func (e *Engine) RebuildIndexes() IndexSnapshot {
	snapshot := IndexSnapshot{
		TasksByCompany: make(map[schema.AccountID][]schema.TaskID),
		TasksByInvitee: make(map[schema.AccountID][]schema.TaskID),
	}
	for _, taskID := range e.tasks.Keys() {
		task, _ := e.tasks.Get(taskID)
		snapshot.TasksByCompany[task.CompanyID] = append(snapshot.TasksByCompany[task.CompanyID], taskID)
		if task.InviteOnly() {
			for _, invitee := range task.Details.Invite.InvitedAccounts {
				snapshot.TasksByInvitee[invitee] = append(snapshot.TasksByInvitee[invitee], taskID)
			}
		}
	}
	return snapshot
}

// VerifyIndexes compares the maintained indices against a fresh
// rebuild and returns the first discrepancy found. A nil result means
// no index entry dangles and no task is missing from its indices.
func (e *Engine) VerifyIndexes() error {
	snapshot := e.RebuildIndexes()

	for company, want := range snapshot.TasksByCompany {
		got := e.byCompany.Members(company)
		if err := sameMembers(got, want); err != nil {
			return fmt.Errorf("company index for %q: %w", company, err)
		}
	}
	for invitee, want := range snapshot.TasksByInvitee {
		got := e.byInvitee.Members(invitee)
		if err := sameMembers(got, want); err != nil {
			return fmt.Errorf("invitation index for %q: %w", invitee, err)
		}
	}

	// Indices must not hold keys the rebuild does not produce, and
	// every member must reference an existing task.
	for _, company := range e.byCompany.Keys() {
		if _, ok := snapshot.TasksByCompany[company]; !ok {
			return fmt.Errorf("company index holds unknown company %q", company)
		}
		for _, taskID := range e.byCompany.Members(company) {
			if !e.tasks.Has(taskID) {
				return fmt.Errorf("company index for %q references missing task %q", company, taskID)
			}
		}
	}
	for _, invitee := range e.byInvitee.Keys() {
		if _, ok := snapshot.TasksByInvitee[invitee]; !ok {
			return fmt.Errorf("invitation index holds unknown account %q", invitee)
		}
		for _, taskID := range e.byInvitee.Members(invitee) {
			if !e.tasks.Has(taskID) {
				return fmt.Errorf("invitation index for %q references missing task %q", invitee, taskID)
			}
		}
	}
	return nil
}

func sameMembers(got, want []schema.TaskID) error {
	if len(got) != len(want) {
		return fmt.Errorf("%d entries, want %d", len(got), len(want))
	}
	members := make(map[schema.TaskID]struct{}, len(got))
	for _, id := range got {
		members[id] = struct{}{}
	}
	for _, id := range want {
		if _, ok := members[id]; !ok {
			return fmt.Errorf("missing task %q", id)
		}
	}
	return nil
}
