// Package specialistrepo provides data transfer objects and mapping functions
// for specialist persistence, including the denormalized search index rows.
package specialistrepo

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/specialist"
	"engage/internal/core/ports"
)

// SpecialistDTO represents the database structure for persisting specialist
// aggregates. Nullable columns model the optional profile parts: a
// specialist may have no service center, no price and no office address.
type SpecialistDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName string

	AccountBlocked     bool
	IdentityVerified   bool
	BackgroundApproved bool
	ToggleOn           bool

	CenterLat *float64
	CenterLng *float64
	RadiusKm  float64
	PriceMinor *int64

	OfficeFormatted *string
	OfficeLat       *float64
	OfficeLng       *float64
	OfficePlaceID   *string

	ScheduleConfigured  bool
	ScheduleDays        string // comma separated time.Weekday values
	ScheduleStartMinute int
	ScheduleEndMinute   int

	RatingAvg         float64
	RatingCount       int
	CancellationCount int

	Categories []CategoryLinkDTO `gorm:"foreignKey:SpecialistID"`
}

// TableName specifies the database table name for specialist entities.
func (SpecialistDTO) TableName() string {
	return "specialists"
}

// CategoryLinkDTO represents one specialist-to-category link with the
// certification record for that category.
type CategoryLinkDTO struct {
	SpecialistID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID    int64     `gorm:"primaryKey"`
	Certification int
}

// TableName specifies the database table name for category links.
func (CategoryLinkDTO) TableName() string {
	return "specialist_categories"
}

// SearchIndexEntryDTO represents one denormalized search index row.
type SearchIndexEntryDTO struct {
	SpecialistID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Lat          float64   `gorm:"index"`
	Lng          float64   `gorm:"index"`
	RadiusKm     float64
	AvailableNow bool `gorm:"index"`
	RefreshedAt  time.Time
}

// TableName specifies the database table name for search index rows.
func (SearchIndexEntryDTO) TableName() string {
	return "search_index_entries"
}

func fromDomain(sp *specialist.Specialist) SpecialistDTO {
	dto := SpecialistDTO{
		ID:                 sp.ID().Bytes(),
		DisplayName:        sp.DisplayName(),
		AccountBlocked:     sp.AccountBlocked(),
		IdentityVerified:   sp.IdentityVerified(),
		BackgroundApproved: sp.BackgroundApproved(),
		ToggleOn:           sp.ToggleOn(),
		RadiusKm:           sp.RadiusKm(),
		PriceMinor:         sp.PriceMinor(),
		RatingAvg:          sp.RatingAvg(),
		RatingCount:        sp.RatingCount(),
		CancellationCount:  sp.CancellationCount(),
	}

	if center := sp.Center(); center != nil {
		lat, lng := center.Lat(), center.Lng()
		dto.CenterLat, dto.CenterLng = &lat, &lng
	}

	if office := sp.OfficeAddress(); office != nil {
		formatted := office.Formatted()
		lat, lng := office.Point().Lat(), office.Point().Lng()
		placeID := office.PlaceID()
		dto.OfficeFormatted = &formatted
		dto.OfficeLat, dto.OfficeLng = &lat, &lng
		dto.OfficePlaceID = &placeID
	}

	schedule := sp.Schedule()
	dto.ScheduleConfigured = schedule.IsConfigured()
	if schedule.IsConfigured() {
		dto.ScheduleDays = encodeDays(schedule.Days())
		dto.ScheduleStartMinute = schedule.StartMinute()
		dto.ScheduleEndMinute = schedule.EndMinute()
	}

	for _, link := range sp.Categories() {
		dto.Categories = append(dto.Categories, CategoryLinkDTO{
			SpecialistID:  dto.ID,
			CategoryID:    link.CategoryID,
			Certification: int(link.Certification),
		})
	}

	return dto
}

func toDomain(dto SpecialistDTO) (*specialist.Specialist, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var center *kernel.GeoPoint
	if dto.CenterLat != nil && dto.CenterLng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.CenterLat, *dto.CenterLng)
		if pointErr != nil {
			return nil, pointErr
		}
		center = &point
	}

	var office *kernel.Address
	if dto.OfficeFormatted != nil && dto.OfficeLat != nil && dto.OfficeLng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.OfficeLat, *dto.OfficeLng)
		if pointErr != nil {
			return nil, pointErr
		}
		placeID := ""
		if dto.OfficePlaceID != nil {
			placeID = *dto.OfficePlaceID
		}
		address, addrErr := kernel.NewAddress(*dto.OfficeFormatted, point, placeID)
		if addrErr != nil {
			return nil, addrErr
		}
		office = &address
	}

	schedule := specialist.NewUnrestrictedSchedule()
	if dto.ScheduleConfigured {
		schedule, err = specialist.NewWeeklySchedule(
			decodeDays(dto.ScheduleDays), dto.ScheduleStartMinute, dto.ScheduleEndMinute)
		if err != nil {
			return nil, err
		}
	}

	links := make([]specialist.CategoryLink, 0, len(dto.Categories))
	for _, link := range dto.Categories {
		links = append(links, specialist.CategoryLink{
			CategoryID:    link.CategoryID,
			Certification: specialist.CertificationStatus(link.Certification),
		})
	}

	return specialist.RestoreSpecialist(
		id, dto.DisplayName,
		dto.AccountBlocked, dto.IdentityVerified, dto.BackgroundApproved, dto.ToggleOn,
		center, dto.RadiusKm, dto.PriceMinor, office,
		links, schedule,
		dto.RatingAvg, dto.RatingCount, dto.CancellationCount,
	)
}

func indexEntryFromPort(entry ports.SearchIndexEntry) SearchIndexEntryDTO {
	return SearchIndexEntryDTO{
		SpecialistID: entry.SpecialistID.Bytes(),
		Lat:          entry.Lat,
		Lng:          entry.Lng,
		RadiusKm:     entry.RadiusKm,
		AvailableNow: entry.AvailableNow,
		RefreshedAt:  entry.RefreshedAt,
	}
}

func encodeDays(days []time.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

func decodeDays(encoded string) []time.Weekday {
	if encoded == "" {
		return nil
	}
	parts := strings.Split(encoded, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		days = append(days, time.Weekday(v))
	}
	return days
}
