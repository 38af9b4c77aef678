package job

import (
	"errors"
	"fmt"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/errs"
	"freightmatch/internal/pkg/guard"
)

// RequestLockTTL is how long a carrier's claim on an open job remains exclusive.
// Within this window a dispatcher can confirm the assignment; after it expires
// the claim is treated as released on the next read. Expiry is checked lazily
// against the clock, never swept by a background process.
const RequestLockTTL = 5 * time.Minute

// Domain errors for job lifecycle operations. All of them are expected,
// caller-facing conditions, distinct from store/infrastructure failures.
var (
	// ErrInvalidJobState is returned when a job is not in the status an
	// operation requires (e.g. requesting a job that is no longer open).
	ErrInvalidJobState = errors.New("job is not in a valid state for this operation")
	// ErrInvalidStateTransition is returned when a requested status change is
	// not permitted by the lifecycle state machine.
	ErrInvalidStateTransition = errors.New("invalid job state transition")
	// ErrJobLocked is returned when another carrier holds an active claim lock.
	ErrJobLocked = errors.New("job is locked by another carrier")
	// ErrPermissionDenied is returned when the acting user lacks the role or
	// ownership a transition requires.
	ErrPermissionDenied = errors.New("permission denied for this operation")
	// ErrJobAlreadyPaired is returned when pairing a job that already has a return leg.
	ErrJobAlreadyPaired = errors.New("job is already paired")
	// ErrJobIsNotConstructed is returned when using an improperly initialized Job.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
)

// Job represents a freight load in the system. It is the aggregate root that
// manages the job lifecycle from posting through claiming, assignment,
// pickup, delivery and settlement, plus backhaul pairing.
//
// Job follows these invariants:
//   - Must have a valid unique identifier and validated pickup/drop coordinates
//   - Pay amount must be positive; equipment type must be set
//   - The scheduling window must satisfy earliestStart <= latestStart
//   - Status moves strictly forward through the six-state lifecycle
//   - Each audit timestamp is set exactly once, on its matching transition
//   - A paired job can never be paired again
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Job struct {
	id kernel.UUID

	// title is a short human-readable load description
	title string
	// origin and destination are free-text route labels
	origin      string
	destination string

	// pickup and drop are the validated route endpoints
	pickup kernel.GeoPoint
	drop   kernel.GeoPoint

	// payAmount is the offered pay in currency units
	payAmount float64
	// equipmentType is the vehicle class the load requires (e.g. box_truck)
	equipmentType string

	// earliestStart and latestStart bound the pickup window
	earliestStart time.Time
	latestStart   time.Time

	status Status

	// assignedTo is the claiming/assigned carrier (nil while open)
	assignedTo *kernel.UUID
	// pairedJobID links this job to its backhaul counterpart (nil if unpaired);
	// when set it is always set symmetrically on both jobs
	pairedJobID *kernel.UUID
	// lockExpiresAt carries the claim lock deadline (nil when unlocked);
	// an expired deadline is equivalent to unlocked
	lockExpiresAt *time.Time

	// audit timestamps, each set exactly once on the matching transition
	requestedAt *time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	paidAt      *time.Time

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewJob creates a new Job in Open status with validation. This is the only way
// to create a valid Job; RestoreJob exists solely for persistence rehydration.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - title: Short load description (must be non-empty)
//   - origin, destination: Free-text route labels
//   - pickup, drop: Validated route endpoints
//   - payAmount: Offered pay (must be positive)
//   - equipmentType: Required vehicle class (must be non-empty)
//   - earliestStart, latestStart: Pickup window (earliest must not be after latest)
//
// Returns:
//   - *Job: The created job if all validations pass
//   - error: Validation error if any parameter is invalid
func NewJob(
	id kernel.UUID,
	title string,
	origin string,
	destination string,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	payAmount float64,
	equipmentType string,
	earliestStart time.Time,
	latestStart time.Time,
) (*Job, error) {
	j := &Job{
		status:      Open,
		origin:      origin,
		destination: destination,
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setTitle(title),
		j.setRoute(pickup, drop),
		j.setPayAmount(payAmount),
		j.setEquipmentType(equipmentType),
		j.setWindow(earliestStart, latestStart),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob reconstructs a Job from persisted state without running the
// creation-time defaults. The status must be valid and the coordinate pair
// must already be validated by the caller (repositories construct GeoPoints
// via their constructor).
func RestoreJob(
	id kernel.UUID,
	title string,
	origin string,
	destination string,
	pickup kernel.GeoPoint,
	drop kernel.GeoPoint,
	payAmount float64,
	equipmentType string,
	earliestStart time.Time,
	latestStart time.Time,
	status Status,
	assignedTo *kernel.UUID,
	pairedJobID *kernel.UUID,
	lockExpiresAt *time.Time,
	timestamps AuditTimestamps,
	createdAt time.Time,
) (*Job, error) {
	if err := status.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	j := &Job{
		status:        status,
		origin:        origin,
		destination:   destination,
		assignedTo:    assignedTo,
		pairedJobID:   pairedJobID,
		lockExpiresAt: lockExpiresAt,
		requestedAt:   timestamps.RequestedAt,
		assignedAt:    timestamps.AssignedAt,
		pickedUpAt:    timestamps.PickedUpAt,
		deliveredAt:   timestamps.DeliveredAt,
		paidAt:        timestamps.PaidAt,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setTitle(title),
		j.setRoute(pickup, drop),
		j.setPayAmount(payAmount),
		j.setEquipmentType(equipmentType),
		j.setWindow(earliestStart, latestStart),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// AuditTimestamps bundles the per-transition audit fields for RestoreJob.
// Each field is nil until its transition has happened.
type AuditTimestamps struct {
	RequestedAt *time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	PaidAt      *time.Time
}

// Validate ensures the Job instance was properly constructed.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// IsEqual compares two jobs by their unique identifiers.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// Title returns the short load description.
func (j *Job) Title() string {
	return j.title
}

// Origin returns the free-text origin label.
func (j *Job) Origin() string {
	return j.origin
}

// Destination returns the free-text destination label.
func (j *Job) Destination() string {
	return j.destination
}

// Pickup returns the pickup coordinates.
func (j *Job) Pickup() kernel.GeoPoint {
	return j.pickup
}

// Drop returns the drop coordinates.
func (j *Job) Drop() kernel.GeoPoint {
	return j.drop
}

// PayAmount returns the offered pay in currency units.
func (j *Job) PayAmount() float64 {
	return j.payAmount
}

// EquipmentType returns the required vehicle class.
func (j *Job) EquipmentType() string {
	return j.equipmentType
}

// EarliestStart returns the start of the pickup window.
func (j *Job) EarliestStart() time.Time {
	return j.earliestStart
}

// LatestStart returns the end of the pickup window.
func (j *Job) LatestStart() time.Time {
	return j.latestStart
}

// Status returns the current lifecycle status.
func (j *Job) Status() Status {
	return j.status
}

// AssignedTo returns the claiming/assigned carrier's ID, or nil if unassigned.
func (j *Job) AssignedTo() *kernel.UUID {
	return j.assignedTo
}

// PairedJobID returns the linked backhaul job's ID, or nil if unpaired.
func (j *Job) PairedJobID() *kernel.UUID {
	return j.pairedJobID
}

// IsPaired reports whether the job already has a backhaul counterpart.
func (j *Job) IsPaired() bool {
	return j.pairedJobID != nil
}

// LockExpiresAt returns the claim lock deadline, or nil when no lock was placed.
func (j *Job) LockExpiresAt() *time.Time {
	return j.lockExpiresAt
}

// IsLockActiveAt reports whether a claim lock is still live at the given time.
// An absent or expired lock deadline counts as unlocked.
func (j *Job) IsLockActiveAt(now time.Time) bool {
	return j.lockExpiresAt != nil && j.lockExpiresAt.After(now)
}

// RequestedAt returns when the job was claimed, or nil.
func (j *Job) RequestedAt() *time.Time { return j.requestedAt }

// AssignedAt returns when the claim was confirmed, or nil.
func (j *Job) AssignedAt() *time.Time { return j.assignedAt }

// PickedUpAt returns when the load was collected, or nil.
func (j *Job) PickedUpAt() *time.Time { return j.pickedUpAt }

// DeliveredAt returns when the load was delivered, or nil.
func (j *Job) DeliveredAt() *time.Time { return j.deliveredAt }

// PaidAt returns when the job was settled, or nil.
func (j *Job) PaidAt() *time.Time { return j.paidAt }

// CreatedAt returns when the job was posted.
func (j *Job) CreatedAt() time.Time { return j.createdAt }

// Request claims the job for a carrier.
//
// Business rules:
//   - The job must be Open (ErrInvalidJobState otherwise)
//   - An active lock held by a different carrier rejects the claim (ErrJobLocked)
//   - A carrier that already holds the lock may re-request; the lock deadline
//     is refreshed rather than treated as a conflict
//
// On success the status becomes Requested, the carrier is recorded, requestedAt
// is stamped and a lock good for RequestLockTTL from now is placed.
func (j *Job) Request(carrierID kernel.UUID, now time.Time) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}

	if j.IsLockActiveAt(now) && (j.assignedTo == nil || !j.assignedTo.IsEqual(carrierID)) {
		return fmt.Errorf("%w: lock held until %s", ErrJobLocked, j.lockExpiresAt.Format(time.RFC3339))
	}

	if j.status == Requested && j.assignedTo != nil && j.assignedTo.IsEqual(carrierID) {
		expires := now.Add(RequestLockTTL)
		j.lockExpiresAt = &expires
		return nil
	}

	newStatus, err := j.status.Request()
	if err != nil {
		return err
	}

	expires := now.Add(RequestLockTTL)
	j.status = newStatus
	j.assignedTo = &carrierID
	j.requestedAt = &now
	j.lockExpiresAt = &expires
	return nil
}

// MarkAssigned confirms the pending claim.
// The claim lock is cleared: the assignment is now durable and the temporary
// exclusivity window is no longer meaningful. assignedAt is stamped once.
func (j *Job) MarkAssigned(now time.Time) error {
	newStatus, err := j.status.Assign()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.assignedAt = &now
	j.lockExpiresAt = nil
	return nil
}

// MarkPickedUp records that the assigned carrier collected the load.
func (j *Job) MarkPickedUp(now time.Time) error {
	newStatus, err := j.status.PickUp()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.pickedUpAt = &now
	return nil
}

// MarkDelivered records that the load reached its destination.
func (j *Job) MarkDelivered(now time.Time) error {
	newStatus, err := j.status.Deliver()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.deliveredAt = &now
	return nil
}

// MarkPaid settles the job. Paid is terminal; no further transitions are possible.
func (j *Job) MarkPaid(now time.Time) error {
	newStatus, err := j.status.Pay()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.paidAt = &now
	return nil
}

// PairWith links this job to its backhaul counterpart.
//
// Business rules:
//   - The job must not already be paired (ErrJobAlreadyPaired)
//   - A job cannot be paired with itself
//
// The caller is responsible for applying the symmetric link to the other job
// and persisting both within one transaction.
func (j *Job) PairWith(otherID kernel.UUID) error {
	if err := otherID.Validate(); err != nil {
		return err
	}

	if j.pairedJobID != nil {
		return fmt.Errorf("%w: already linked to %s", ErrJobAlreadyPaired, j.pairedJobID)
	}

	if j.id.IsEqual(otherID) {
		return errs.NewValueIsInvalidErrorWithCause("pairedJobId",
			errors.New("a job cannot be paired with itself"))
	}

	j.pairedJobID = &otherID
	return nil
}

// setID validates and sets the job's unique identifier.
func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

// setTitle validates and sets the load description.
func (j *Job) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	j.title = title
	return nil
}

// setRoute validates and sets both route endpoints.
func (j *Job) setRoute(pickup kernel.GeoPoint, drop kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), drop.Validate()); err != nil {
		return err
	}
	j.pickup = pickup
	j.drop = drop
	return nil
}

// setPayAmount validates and sets the offered pay. Pay must be positive.
func (j *Job) setPayAmount(pay float64) error {
	if pay <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("payAmount",
			fmt.Errorf("%v is not greater than 0", pay))
	}
	j.payAmount = pay
	return nil
}

// setEquipmentType validates and sets the required vehicle class.
func (j *Job) setEquipmentType(equipmentType string) error {
	if equipmentType == "" {
		return errs.NewValueIsRequiredError("equipmentType")
	}
	j.equipmentType = equipmentType
	return nil
}

// setWindow validates and sets the pickup window.
func (j *Job) setWindow(earliest time.Time, latest time.Time) error {
	if earliest.IsZero() || latest.IsZero() {
		return errs.NewValueIsRequiredError("schedule window")
	}
	if earliest.After(latest) {
		return errs.NewValueIsInvalidErrorWithCause("schedule window",
			errors.New("earliestStart is after latestStart"))
	}
	j.earliestStart = earliest
	j.latestStart = latest
	return nil
}
