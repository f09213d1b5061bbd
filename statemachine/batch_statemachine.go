// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
package statemachine

import (
	"fmt"
	"time"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

type Trigger string

const (
	TriggerCreate           Trigger = "create"
	TriggerStartInspection  Trigger = "start_inspection"
	TriggerSubmitInspection Trigger = "submit_inspection"
	TriggerIssueCredential  Trigger = "issue_credential"
	TriggerReject           Trigger = "reject"
	TriggerRevoke           Trigger = "revoke"
)

const (
	RemarkSubmitted         = "Batch submitted for quality inspection"
	RemarkInspectionStarted = "Inspection started by QA agency"
	RemarkCredentialIssued  = "Digital Product Passport issued"
	DefaultRejectReason     = "Inspection result did not pass"
	DefaultRevokeReason     = "Revoked by issuer"
)

type edge struct {
	from    dtos.BatchStatus
	trigger Trigger
}

var transitions = map[edge]dtos.BatchStatus{
	{dtos.BatchStatusSubmitted, TriggerStartInspection}:          dtos.BatchStatusUnderInspection,
	{dtos.BatchStatusUnderInspection, TriggerSubmitInspection}:   dtos.BatchStatusInspectionComplete,
	{dtos.BatchStatusInspectionComplete, TriggerIssueCredential}: dtos.BatchStatusCertified,
	{dtos.BatchStatusInspectionComplete, TriggerReject}:          dtos.BatchStatusRejected,
	{dtos.BatchStatusCertified, TriggerRevoke}:                   dtos.BatchStatusRevoked,
}

// Facts are the parts of the world a transition guard looks at besides the current status.
type Facts struct {
	HasInspection    bool
	HasCredential    bool
	InspectionResult dtos.InspectionResult
	// Reason is the free text given for reject and revoke
	Reason string
}

// Transition is a decided, not yet persisted status change.
type Transition struct {
	From    dtos.BatchStatus
	To      dtos.BatchStatus
	Trigger Trigger
	Remarks string
}

// Next looks up the target status without evaluating guards
func Next(current dtos.BatchStatus, trigger Trigger) (dtos.BatchStatus, error) {
	to, ok := transitions[edge{current, trigger}]
	if !ok {
		return "", shared.NewPreconditionError(fmt.Sprintf("cannot %s a batch in status %s", trigger, current))
	}
	return to, nil
}

// Decide validates the requested trigger against the current status and facts.
// It returns a PreconditionError naming the violated rule.
func Decide(current dtos.BatchStatus, trigger Trigger, facts Facts) (Transition, error) {
	to, err := Next(current, trigger)
	if err != nil {
		return Transition{}, err
	}
	t := Transition{From: current, To: to, Trigger: trigger}

	switch trigger {
	case TriggerStartInspection:
		if facts.HasInspection {
			return Transition{}, shared.NewPreconditionError("batch already has an inspection")
		}
		t.Remarks = RemarkInspectionStarted
	case TriggerSubmitInspection:
		if !facts.InspectionResult.IsFinal() {
			return Transition{}, shared.NewPreconditionError("inspection result must be pass, fail or conditional_pass")
		}
		t.Remarks = fmt.Sprintf("Inspection completed with result: %s", facts.InspectionResult)
	case TriggerIssueCredential:
		if facts.InspectionResult != dtos.InspectionResultPass {
			return Transition{}, shared.NewPreconditionError("inspection must pass before a credential can be issued")
		}
		if facts.HasCredential {
			return Transition{}, shared.NewPreconditionError("credential already exists for this batch")
		}
		t.Remarks = RemarkCredentialIssued
	case TriggerReject:
		if facts.InspectionResult == dtos.InspectionResultPass {
			return Transition{}, shared.NewPreconditionError("a passed inspection cannot be rejected")
		}
		t.Remarks = fmt.Sprintf("Batch rejected: %s", orDefault(facts.Reason, DefaultRejectReason))
	case TriggerRevoke:
		if !facts.HasCredential {
			return Transition{}, shared.NewPreconditionError("batch has no credential to revoke")
		}
		t.Remarks = fmt.Sprintf("Credential revoked: %s", orDefault(facts.Reason, DefaultRevokeReason))
	}

	return t, nil
}

// Initial is the transition of a newly created batch
func Initial() Transition {
	return Transition{To: dtos.BatchStatusSubmitted, Trigger: TriggerCreate, Remarks: RemarkSubmitted}
}

// Apply moves the batch to the target status and returns the ledger entry recording it.
// Callers persist both in the same transaction.
func Apply(batch *models.Batch, t Transition, changedBy string, at time.Time) models.BatchStatusEvent {
	batch.Status = t.To
	return models.NewBatchStatusEvent(batch.ID, t.To, changedBy, t.Remarks, at)
}

// CanEdit reports whether owner edits are still allowed in the status
func CanEdit(status dtos.BatchStatus) bool {
	return status == dtos.BatchStatusSubmitted || status == dtos.BatchStatusUnderInspection
}

func IsTerminal(status dtos.BatchStatus) bool {
	return status == dtos.BatchStatusRejected || status == dtos.BatchStatusRevoked
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
