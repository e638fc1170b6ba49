package client

import (
	"context"
	"fmt"
	"sync"

	"veriflow/models"
)

// Stage is a step of the registration flow.
type Stage string

const (
	StageForm                 Stage = "form"
	StageProviderVerification Stage = "provider-verification"
	StagePending              Stage = "pending"
	StageSuccess              Stage = "success"
)

// Flow drives the registration state machine:
//
//	form -> provider-verification -> pending -> success
//	                                         -> form (with error) on a
//	                                            terminal negative status
//
// A resubmitted status keeps the flow in pending and polling continues.
//
// Cancel may be called from a goroutine other than the one blocked in
// AwaitOutcome; all mutable state is guarded by mu.
type Flow struct {
	api    *Client
	poller *Poller

	mu     sync.Mutex
	stage  Stage
	email  string
	token  string
	outErr string

	cancelPoll context.CancelFunc
}

// NewFlow creates a flow in the form stage.
func NewFlow(api *Client) *Flow {
	return &Flow{
		api:    api,
		poller: NewPoller(api),
		stage:  StageForm,
	}
}

// Stage returns the current stage.
func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Err returns the surfaced error string for the form stage, if any.
func (f *Flow) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outErr
}

// AccessToken returns the provider WebSDK token obtained by Submit.
func (f *Flow) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// Submit validates and saves the registration, then obtains a provider
// session token, moving the flow to provider-verification.
func (f *Flow) Submit(ctx context.Context, input models.RegistrationInput) error {
	if stage := f.Stage(); stage != StageForm {
		return fmt.Errorf("submit is only valid in the form stage, current stage is %s", stage)
	}
	if input.Email == "" || input.Password == "" {
		f.setErr("email and password are required")
		return fmt.Errorf("email and password are required")
	}

	if err := f.api.SaveRegistration(ctx, input); err != nil {
		f.setErr(err.Error())
		return err
	}

	token, _, err := f.api.CreateAccessToken(ctx, input.Email)
	if err != nil {
		f.setErr(err.Error())
		return err
	}

	f.mu.Lock()
	f.email = input.Email
	f.token = token
	f.outErr = ""
	f.stage = StageProviderVerification
	f.mu.Unlock()
	return nil
}

// VerificationStarted records that the provider widget has created a session
// and taken over; the flow moves to pending and polling may begin.
func (f *Flow) VerificationStarted() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage == StageProviderVerification {
		f.stage = StagePending
	}
}

// AwaitOutcome polls the status endpoint until a terminal status lands, then
// transitions the flow. A negative terminal status returns the flow to the
// form stage with a surfaced error.
func (f *Flow) AwaitOutcome(ctx context.Context) (models.VerificationStatus, error) {
	f.mu.Lock()
	if f.stage != StagePending {
		stage := f.stage
		f.mu.Unlock()
		return "", fmt.Errorf("awaiting outcome is only valid in the pending stage, current stage is %s", stage)
	}
	pollCtx, cancel := context.WithCancel(ctx)
	f.cancelPoll = cancel
	email := f.email
	f.mu.Unlock()

	defer func() {
		cancel()
		f.mu.Lock()
		f.cancelPoll = nil
		f.mu.Unlock()
	}()

	// The lock is not held while polling; Cancel stays callable throughout.
	status, err := f.poller.Wait(pollCtx, email)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.stage = StageForm
		f.outErr = err.Error()
		return "", err
	}

	if status == models.StatusApproved {
		f.stage = StageSuccess
		f.outErr = ""
		return status, nil
	}

	f.stage = StageForm
	f.outErr = fmt.Sprintf("verification %s, please try again", status)
	return status, nil
}

// Cancel stops an active poll immediately and returns the flow to the form
// stage. Safe to call at any time, from any goroutine.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelPoll != nil {
		f.cancelPoll()
	}
	f.stage = StageForm
}

func (f *Flow) setErr(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outErr = msg
}
