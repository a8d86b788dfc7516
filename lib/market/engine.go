// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bountyboard-foundation/bountyboard/lib/clock"
	"github.com/bountyboard-foundation/bountyboard/lib/escrow"
	"github.com/bountyboard-foundation/bountyboard/lib/schema"
	"github.com/bountyboard-foundation/bountyboard/lib/store"
)

// EngineConfig holds the dependencies for creating an Engine.
type EngineConfig struct {
	// Params is the pricing and limit configuration. The zero value
	// means DefaultParams().
	Params Params

	// Clock supplies current time for every ping. If nil, the system
	// clock is used.
	Clock clock.Clock

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	// Payer issues reward and refund transfers. Required.
	Payer Payer

	// Companies vets task-posting companies. Required.
	Companies CompanyDirectory

	// Profiles records completed tasks on participant profiles.
	// Required.
	Profiles ProfileDirectory

	// Provisioner creates accounts for new participants. Required.
	Provisioner Provisioner
}

// Engine is the task lifecycle engine. It owns the task table, the
// derived indices, the submission ledger, and the escrow accountant,
// and consults the external collaborators for everything else.
//
// All methods assume the single-call execution model: no method is
// safe for concurrent use.
type Engine struct {
	params Params
	clock  clock.Clock
	logger *slog.Logger

	payer       Payer
	companies   CompanyDirectory
	profiles    ProfileDirectory
	provisioner Provisioner

	store       *store.Store
	accountant  *escrow.Accountant
	tasks       *store.Table[schema.TaskID, schema.Task]
	byCompany   *store.IndexedSet[schema.AccountID, schema.TaskID]
	byInvitee   *store.IndexedSet[schema.AccountID, schema.TaskID]
	submissions *store.NestedMap[schema.TaskID, schema.AccountID, schema.Submission]
}

// New creates an Engine with empty storage.
func New(config EngineConfig) (*Engine, error) {
	if config.Payer == nil {
		return nil, fmt.Errorf("market: Payer is required")
	}
	if config.Companies == nil {
		return nil, fmt.Errorf("market: Companies is required")
	}
	if config.Profiles == nil {
		return nil, fmt.Errorf("market: Profiles is required")
	}
	if config.Provisioner == nil {
		return nil, fmt.Errorf("market: Provisioner is required")
	}

	params := config.Params
	if params == (Params{}) {
		params = DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("market: %w", err)
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := store.New()
	return &Engine{
		params:      params,
		clock:       clk,
		logger:      logger,
		payer:       config.Payer,
		companies:   config.Companies,
		profiles:    config.Profiles,
		provisioner: config.Provisioner,
		store:       s,
		accountant:  escrow.NewAccountant(s, params.PricePerByte),
		tasks:       store.NewTable[schema.TaskID, schema.Task](s, "task"),
		byCompany:   store.NewIndexedSet[schema.AccountID, schema.TaskID](s, "company_tasks"),
		byInvitee:   store.NewIndexedSet[schema.AccountID, schema.TaskID](s, "invited_tasks"),
		submissions: store.NewNestedMap[schema.TaskID, schema.AccountID, schema.Submission](s, "submission"),
	}, nil
}

// Params returns the engine's configuration.
func (e *Engine) Params() Params {
	return e.params
}

// BytesUsed returns the bytes currently retained by the engine's
// storage.
func (e *Engine) BytesUsed() uint64 {
	return e.store.BytesUsed()
}

// ping materializes any time-based transition that should already have
// happened. It mutates the record in place and reports whether the
// state changed; the caller is responsible for persisting.
func (e *Engine) ping(taskID schema.TaskID, task *schema.Task) bool {
	now := e.clock.Now()
	from := task.State
	switch task.State {
	case schema.StateOpen:
		if task.PastValidity(now) {
			task.State = schema.StateExpired
		}
	case schema.StatePending:
		if task.PastDeadline(now) {
			task.State = schema.StateOverdue
		}
	}
	if task.State == from {
		return false
	}
	e.logger.Debug("task transitioned",
		"task", taskID, "from", from, "to", task.State)
	return true
}

// Ping touches a task, persisting any pending time-based transition,
// and returns the resulting state.
func (e *Engine) Ping(taskID schema.TaskID) (schema.TaskState, error) {
	task, ok := e.tasks.Get(taskID)
	if !ok {
		return "", fmt.Errorf("ping task %q: %w", taskID, store.ErrKeyNotFound)
	}
	if !e.ping(taskID, &task) {
		return task.State, nil
	}
	j := e.store.Begin()
	defer j.Rollback()
	if err := e.tasks.Put(taskID, task); err != nil {
		return "", fmt.Errorf("ping task %q: %w", taskID, err)
	}
	j.Commit()
	return task.State, nil
}

// CreateTask posts a new task on behalf of a company. The deposit must
// cover the storage the record and its index entries retain, the full
// reward (escrowed until completion), and the per-invitee surcharge
// for invite-only tasks. The surplus is returned.
func (e *Engine) CreateTask(companyID schema.AccountID, taskID schema.TaskID, details schema.TaskDetails, deadline time.Time, payToken schema.AccountID, reward schema.Amount, deposit schema.Amount) (schema.Amount, error) {
	if err := companyID.Validate(); err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	if err := taskID.Validate(); err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}
	if owner := taskID.Company(); owner != companyID {
		return 0, fmt.Errorf("create task: task %q belongs to %q, caller is %q: %w",
			taskID, owner, companyID, ErrNotOwner)
	}
	if !e.companies.IsWhitelisted(companyID) {
		return 0, fmt.Errorf("create task: company %q: %w", companyID, ErrNotWhitelisted)
	}
	if err := payToken.Validate(); err != nil {
		return 0, fmt.Errorf("create task: pay token: %w", err)
	}
	if deadline.IsZero() {
		return 0, errors.New("create task: deadline is required")
	}

	task, err := schema.NewTask(details, companyID, deadline, payToken, reward)
	if err != nil {
		return 0, fmt.Errorf("create task %q: %w", taskID, err)
	}

	var invitees []schema.AccountID
	if task.InviteOnly() {
		invitees = task.Details.Invite.InvitedAccounts
		if len(invitees) > e.params.MaxInvitees {
			return 0, fmt.Errorf("create task %q: %d invitees, cap is %d: %w",
				taskID, len(invitees), e.params.MaxInvitees, ErrTooManyInvitees)
		}
	}

	bill := e.accountant.Begin()
	j := e.store.Begin()
	defer j.Rollback()

	if err := e.tasks.Insert(taskID, task); err != nil {
		return 0, fmt.Errorf("create task %q: %w", taskID, err)
	}
	if err := e.byCompany.Add(companyID, taskID); err != nil {
		return 0, fmt.Errorf("create task %q: company index: %w", taskID, err)
	}
	for _, invitee := range invitees {
		if err := e.byInvitee.Add(invitee, taskID); err != nil {
			return 0, fmt.Errorf("create task %q: invitation index for %q: %w", taskID, invitee, err)
		}
	}

	reserve := reward + e.params.InviteeSurcharge*schema.Amount(len(invitees))
	refund, err := bill.Settle(deposit, reserve)
	if err != nil {
		return 0, fmt.Errorf("create task %q: %w", taskID, err)
	}
	j.Commit()

	e.logger.Info("task created",
		"task", taskID, "company", companyID, "kind", task.Details.Kind,
		"state", task.State, "reward", reward, "refund", refund)
	return refund, nil
}

// ExtendDeadline moves a task's deadline later. It reports false once
// the task has left the open or pending states; a new deadline that is
// not later than the current one is ignored without error, since the
// ping alone may have been the point of the call.
func (e *Engine) ExtendDeadline(taskID schema.TaskID, newDeadline time.Time) (bool, error) {
	task, ok := e.tasks.Get(taskID)
	if !ok {
		return false, fmt.Errorf("extend deadline for task %q: %w", taskID, store.ErrKeyNotFound)
	}

	j := e.store.Begin()
	defer j.Rollback()

	changed := e.ping(taskID, &task)
	extended := false
	switch task.State {
	case schema.StateOpen, schema.StatePending:
		if newDeadline.After(task.Deadline) {
			task.Deadline = newDeadline
			changed = true
			extended = true
		}
	default:
		// The ping result still persists: the call observed the task.
		if changed {
			if err := e.tasks.Put(taskID, task); err != nil {
				return false, fmt.Errorf("extend deadline for task %q: %w", taskID, err)
			}
			j.Commit()
		}
		return false, nil
	}

	if changed {
		if err := e.tasks.Put(taskID, task); err != nil {
			return false, fmt.Errorf("extend deadline for task %q: %w", taskID, err)
		}
		j.Commit()
	}
	if extended {
		e.logger.Info("deadline extended", "task", taskID, "deadline", newDeadline)
	}
	return true, nil
}

// AcceptInvite assigns an invite-only task to an invited account. The
// assignment is irreversible; a second acceptance fails because the
// task is no longer open.
func (e *Engine) AcceptInvite(userID schema.AccountID, taskID schema.TaskID) error {
	if err := userID.Validate(); err != nil {
		return fmt.Errorf("accept invite: %w", err)
	}
	task, ok := e.tasks.Get(taskID)
	if !ok {
		return fmt.Errorf("accept invite for task %q: %w", taskID, store.ErrKeyNotFound)
	}

	j := e.store.Begin()
	defer j.Rollback()

	e.ping(taskID, &task)
	if task.State != schema.StateOpen {
		return fmt.Errorf("accept invite for task %q: state is %q: %w", taskID, task.State, ErrInvalidState)
	}
	if !task.Details.Invite.Invited(userID) {
		return fmt.Errorf("accept invite for task %q: account %q: %w", taskID, userID, ErrNotInvited)
	}

	task.Assignee = userID
	task.State = schema.StatePending
	if err := e.tasks.Put(taskID, task); err != nil {
		return fmt.Errorf("accept invite for task %q: %w", taskID, err)
	}
	j.Commit()

	e.logger.Info("invite accepted", "task", taskID, "assignee", userID)
	return nil
}

// SubmitWork records a submission for a task. A pending task becomes
// completed; when it has an assignee, the reward transfer and profile
// update are issued and the task reaches payed in the same call. A
// completed open-to-all task accepts further submissions, one per
// submitter, so the company can pick among them. The deposit covers
// the storage the submission retains; the surplus is returned.
func (e *Engine) SubmitWork(userID schema.AccountID, taskID schema.TaskID, submission schema.Submission, deposit schema.Amount) (schema.Amount, error) {
	if err := userID.Validate(); err != nil {
		return 0, fmt.Errorf("submit work: %w", err)
	}
	if err := submission.Validate(); err != nil {
		return 0, fmt.Errorf("submit work for task %q: %w", taskID, err)
	}
	task, ok := e.tasks.Get(taskID)
	if !ok {
		return 0, fmt.Errorf("submit work for task %q: %w", taskID, store.ErrKeyNotFound)
	}

	bill := e.accountant.Begin()
	j := e.store.Begin()
	defer j.Rollback()

	e.ping(taskID, &task)

	pay := false
	switch task.State {
	case schema.StatePending:
		if !task.Assignee.IsZero() && task.Assignee != userID {
			return 0, fmt.Errorf("submit work for task %q: account %q: %w", taskID, userID, ErrNotAssignee)
		}
		if err := e.recordSubmission(taskID, userID, submission); err != nil {
			return 0, err
		}
		task.State = schema.StateCompleted
		if !task.Assignee.IsZero() {
			// Exactly one eligible party: settle the reward now. The
			// transfer itself goes out after commit.
			task.State = schema.StatePayed
			pay = true
		}
	case schema.StateCompleted:
		if task.InviteOnly() {
			return 0, fmt.Errorf("submit work for task %q: %w", taskID, ErrSubmissionNotAllowed)
		}
		if err := e.recordSubmission(taskID, userID, submission); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("submit work for task %q: state is %q: %w", taskID, task.State, ErrSubmissionNotAllowed)
	}

	if err := e.tasks.Put(taskID, task); err != nil {
		return 0, fmt.Errorf("submit work for task %q: %w", taskID, err)
	}
	refund, err := bill.Settle(deposit, 0)
	if err != nil {
		return 0, fmt.Errorf("submit work for task %q: %w", taskID, err)
	}
	j.Commit()

	e.logger.Info("work submitted",
		"task", taskID, "submitter", userID, "state", task.State, "refund", refund)
	if pay {
		e.payer.Pay(userID, task.Reward, task.PayToken)
		e.profiles.RecordCompletedTask(userID, taskID)
		e.logger.Info("reward issued",
			"task", taskID, "recipient", userID, "amount", task.Reward, "token", task.PayToken)
	}
	return refund, nil
}

// recordSubmission inserts into the ledger, translating the store's
// collision error into the lifecycle taxonomy.
func (e *Engine) recordSubmission(taskID schema.TaskID, userID schema.AccountID, submission schema.Submission) error {
	err := e.submissions.Insert(taskID, userID, submission)
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		return fmt.Errorf("submit work for task %q: account %q: %w", taskID, userID, ErrDuplicateSubmission)
	}
	return fmt.Errorf("submit work for task %q: %w", taskID, err)
}

// RefundTask reclaims an expired or overdue task for its owning
// company. The record and every index entry referencing it are
// removed, and the escrowed reward is returned to the company. The
// call frees storage, so no deposit is needed.
func (e *Engine) RefundTask(companyID schema.AccountID, taskID schema.TaskID) error {
	task, ok := e.tasks.Get(taskID)
	if !ok {
		return fmt.Errorf("refund task %q: %w", taskID, store.ErrKeyNotFound)
	}

	j := e.store.Begin()
	defer j.Rollback()

	e.ping(taskID, &task)
	if task.CompanyID != companyID {
		return fmt.Errorf("refund task %q: owner is %q, caller is %q: %w",
			taskID, task.CompanyID, companyID, ErrNotOwner)
	}
	switch task.State {
	case schema.StateExpired, schema.StateOverdue:
	default:
		return fmt.Errorf("refund task %q: state is %q: %w", taskID, task.State, ErrInvalidState)
	}

	if err := e.tasks.Remove(taskID); err != nil {
		return fmt.Errorf("refund task %q: %w", taskID, err)
	}
	if err := e.byCompany.Remove(companyID, taskID); err != nil {
		return fmt.Errorf("refund task %q: company index: %w", taskID, err)
	}
	if task.InviteOnly() {
		for _, invitee := range task.Details.Invite.InvitedAccounts {
			if err := e.byInvitee.Remove(invitee, taskID); err != nil {
				return fmt.Errorf("refund task %q: invitation index for %q: %w", taskID, invitee, err)
			}
		}
	}
	e.submissions.RemoveAll(taskID)
	j.Commit()

	e.payer.Pay(companyID, task.Reward, task.PayToken)
	e.logger.Info("task refunded",
		"task", taskID, "company", companyID, "amount", task.Reward, "token", task.PayToken)
	return nil
}

// RegisterParticipant validates a new participant's account name and
// asks the provisioner to create the account. Fire and forget; the
// engine stores nothing for the participant.
func (e *Engine) RegisterParticipant(userID schema.AccountID, credential string) error {
	if err := userID.Validate(); err != nil {
		return fmt.Errorf("register participant: %w", err)
	}
	if credential == "" {
		return errors.New("register participant: credential is required")
	}
	e.provisioner.Provision(userID, credential)
	e.logger.Info("participant provisioning requested", "account", userID)
	return nil
}
