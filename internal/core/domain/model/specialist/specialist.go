package specialist

import (
	"errors"
	"fmt"
	"math"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

var (
	// ErrSpecialistIsNotConstructed is returned when a Specialist instance was not
	// created through the NewSpecialist factory method.
	ErrSpecialistIsNotConstructed = errors.New("Specialist must be created via NewSpecialist constructor")
)

// MaxServiceRadiusKm caps the service area a specialist may advertise.
// Candidate search prefilters with a bounding box of exactly this radius,
// so any larger advertised area would silently fall out of search results.
const MaxServiceRadiusKm = 100

// Specialist represents a service provider in the system. It is the
// aggregate root for everything the visibility gate and the candidate
// search read: account flags, the availability toggle, the advertised
// service area, category qualifications, the weekly schedule, and the
// running rating aggregate.
//
// The account flags (blocked, identity verified, background approved) are
// owned by external providers and only mirrored here; this aggregate never
// decides them, it stores what the providers synced.
type Specialist struct {
	id          kernel.UUID
	displayName string

	accountBlocked     bool
	identityVerified   bool
	backgroundApproved bool
	toggleOn           bool

	center        *kernel.GeoPoint
	radiusKm      float64
	priceMinor    *int64
	officeAddress *kernel.Address

	categories []CategoryLink
	schedule   Schedule

	ratingAvg         float64
	ratingCount       int
	cancellationCount int

	isConstructed bool
}

// NewSpecialist creates a specialist with the given profile. The center
// point may be nil (no advertised area yet); radiusKm must be positive.
func NewSpecialist(
	id kernel.UUID,
	displayName string,
	center *kernel.GeoPoint,
	radiusKm float64,
	schedule Schedule,
) (*Specialist, error) {
	s := &Specialist{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setDisplayName(displayName),
		s.setCenter(center),
		s.setRadiusKm(radiusKm),
		s.setSchedule(schedule),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSpecialist reconstructs a specialist from persistence.
func RestoreSpecialist(
	id kernel.UUID,
	displayName string,
	accountBlocked bool,
	identityVerified bool,
	backgroundApproved bool,
	toggleOn bool,
	center *kernel.GeoPoint,
	radiusKm float64,
	priceMinor *int64,
	officeAddress *kernel.Address,
	categories []CategoryLink,
	schedule Schedule,
	ratingAvg float64,
	ratingCount int,
	cancellationCount int,
) (*Specialist, error) {
	s := &Specialist{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setDisplayName(displayName),
		s.setCenter(center),
		s.setRadiusKm(radiusKm),
		s.setSchedule(schedule),
	); err != nil {
		return nil, err
	}

	if ratingCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("ratingCount",
			fmt.Errorf("%d is negative", ratingCount))
	}
	if cancellationCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("cancellationCount",
			fmt.Errorf("%d is negative", cancellationCount))
	}

	s.accountBlocked = accountBlocked
	s.identityVerified = identityVerified
	s.backgroundApproved = backgroundApproved
	s.toggleOn = toggleOn
	s.priceMinor = priceMinor
	s.officeAddress = officeAddress
	s.categories = categories
	s.ratingAvg = ratingAvg
	s.ratingCount = ratingCount
	s.cancellationCount = cancellationCount
	return s, nil
}

// Validate ensures the Specialist was created through a constructor.
func (s *Specialist) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSpecialistIsNotConstructed
	}
	return nil
}

// ID returns the specialist's unique identifier.
func (s *Specialist) ID() kernel.UUID { return s.id }

// DisplayName returns the public display name.
func (s *Specialist) DisplayName() string { return s.displayName }

// AccountBlocked reports whether the account is administratively blocked.
func (s *Specialist) AccountBlocked() bool { return s.accountBlocked }

// IdentityVerified reports whether the identity provider verified the specialist.
func (s *Specialist) IdentityVerified() bool { return s.identityVerified }

// BackgroundApproved reports whether the background check passed review.
func (s *Specialist) BackgroundApproved() bool { return s.backgroundApproved }

// ToggleOn reports the specialist's own availability switch.
func (s *Specialist) ToggleOn() bool { return s.toggleOn }

// Center returns the advertised service area's center, nil when unset.
func (s *Specialist) Center() *kernel.GeoPoint { return s.center }

// RadiusKm returns the advertised service radius in kilometers.
func (s *Specialist) RadiusKm() float64 { return s.radiusKm }

// PriceMinor returns the advertised price in minor currency units, nil when unset.
func (s *Specialist) PriceMinor() *int64 { return s.priceMinor }

// OfficeAddress returns the registered office address, nil when unset.
// OFFICE-mode orders substitute this address for the customer-supplied one.
func (s *Specialist) OfficeAddress() *kernel.Address { return s.officeAddress }

// Categories returns the specialist's category links.
func (s *Specialist) Categories() []CategoryLink { return s.categories }

// Schedule returns the weekly working schedule.
func (s *Specialist) Schedule() Schedule { return s.schedule }

// RatingAvg returns the running average score.
func (s *Specialist) RatingAvg() float64 { return s.ratingAvg }

// RatingCount returns how many ratings the average is built from.
func (s *Specialist) RatingCount() int { return s.ratingCount }

// CancellationCount returns how many accepted orders the specialist cancelled.
func (s *Specialist) CancellationCount() int { return s.cancellationCount }

// CategoryLink returns the link for the given category and whether one exists.
func (s *Specialist) CategoryLink(categoryID int64) (CategoryLink, bool) {
	for _, l := range s.categories {
		if l.CategoryID == categoryID {
			return l, true
		}
	}
	return CategoryLink{}, false
}

// SmallestCategoryID returns the specialist's smallest category identifier,
// the deterministic default when a caller omits a category. Returns false
// when the specialist has no categories.
func (s *Specialist) SmallestCategoryID() (int64, bool) {
	if len(s.categories) == 0 {
		return 0, false
	}

	smallest := int64(math.MaxInt64)
	for _, l := range s.categories {
		if l.CategoryID < smallest {
			smallest = l.CategoryID
		}
	}
	return smallest, true
}

// SetAvailability flips the specialist's own availability switch. Whether
// the specialist may flip it at all is the visibility gate's decision and
// is enforced by the caller before invoking this.
func (s *Specialist) SetAvailability(on bool) {
	s.toggleOn = on
}

// IncrementCancellations bumps the post-acceptance cancellation statistic.
// Declines of still-pending targeted requests must not call this.
func (s *Specialist) IncrementCancellations() {
	s.cancellationCount++
}

func (s *Specialist) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Specialist) setDisplayName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	s.displayName = name
	return nil
}

func (s *Specialist) setCenter(center *kernel.GeoPoint) error {
	if center == nil {
		return nil
	}
	if err := center.Validate(); err != nil {
		return err
	}
	point := *center
	s.center = &point
	return nil
}

func (s *Specialist) setRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%f is not greater than 0", radiusKm))
	}
	if radiusKm > MaxServiceRadiusKm {
		return errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0, MaxServiceRadiusKm)
	}
	s.radiusKm = radiusKm
	return nil
}

func (s *Specialist) setSchedule(schedule Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	s.schedule = schedule
	return nil
}
