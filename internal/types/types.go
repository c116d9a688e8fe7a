// Package types provides domain models shared across godshot components.
//
// Models mirror the relational schema one-to-one. Nullable columns use
// pointer fields so JSON round-trips distinguish "absent" from zero values.
// db struct tags drive sqlx scanning; json tags drive the REST surface.
package types

import "time"

// RoastLevel enumerates the supported roast levels for a bean.
type RoastLevel string

const (
	RoastDark        RoastLevel = "Dark"
	RoastMediumDark  RoastLevel = "Medium Dark"
	RoastMedium      RoastLevel = "Medium"
	RoastMediumLight RoastLevel = "Medium Light"
	RoastLight       RoastLevel = "Light"
)

// Valid reports whether the roast level is one of the known constants.
func (r RoastLevel) Valid() bool {
	switch r {
	case RoastDark, RoastMediumDark, RoastMedium, RoastMediumLight, RoastLight:
		return true
	}
	return false
}

// Barista is an account that owns bags and logs brews.
// DisplayName may be empty; the naming service falls back to FirstName.
// Timezone is an optional IANA zone name used for brew-name bucketing.
type Barista struct {
	ID          BaristaID `db:"id" json:"id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	Timezone    string    `db:"timezone" json:"timezone"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Roaster is a catalog entity referenced by beans.
type Roaster struct {
	ID   RoasterID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// Bean is a shared catalog entity referenced by bags.
type Bean struct {
	ID              BeanID     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	RoasterID       RoasterID  `db:"roaster_id" json:"roaster_id"`
	RoastLevel      RoastLevel `db:"roast_level" json:"roast_level"`
	CountryOfOrigin *string    `db:"country_of_origin" json:"country_of_origin,omitempty"`
	TastingNotes    *string    `db:"tasting_notes" json:"tasting_notes,omitempty"`
	Rating          *int       `db:"rating" json:"rating,omitempty"`
}

// Machine is an espresso machine catalog entity.
type Machine struct {
	ID             MachineID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Manufacturer   *string   `db:"manufacturer" json:"manufacturer,omitempty"`
	UserManualLink *string   `db:"user_manual_link" json:"user_manual_link,omitempty"`
	Image          *string   `db:"image" json:"image,omitempty"`
}

// Grinder is a grinder catalog entity.
type Grinder struct {
	ID                GrinderID `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	UserManualLink    *string   `db:"user_manual_link" json:"user_manual_link,omitempty"`
	Image             *string   `db:"image" json:"image,omitempty"`
	SettingGuideChart *string   `db:"setting_guide_chart" json:"setting_guide_chart,omitempty"`
}

// Bag is a barista-owned inventory batch referencing a catalog bean.
// Name is synthesized by the naming service when the caller omits it.
type Bag struct {
	ID               BagID      `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	BeanID           BeanID     `db:"bean_id" json:"bean_id"`
	BaristaID        BaristaID  `db:"barista_id" json:"barista_id"`
	RoastDate        *time.Time `db:"roast_date" json:"roast_date,omitempty"`
	Weight           *float64   `db:"weight" json:"weight,omitempty"`
	Price            *float64   `db:"price" json:"price,omitempty"`
	PurchaseLocation *string    `db:"purchase_location" json:"purchase_location,omitempty"`
	Rating           *int       `db:"rating" json:"rating,omitempty"`
}

// Brew is a timestamped brew event referencing a bag.
// Name is synthesized by the naming service when the caller omits it.
type Brew struct {
	ID           BrewID    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	MachineID    MachineID `db:"machine_id" json:"machine_id"`
	BagID        BagID     `db:"bag_id" json:"bag_id"`
	GrinderID    GrinderID `db:"grinder_id" json:"grinder_id"`
	BaristaID    BaristaID `db:"barista_id" json:"barista_id"`
	BrewTime     *float64  `db:"brew_time" json:"brew_time,omitempty"`
	Timestamp    time.Time `db:"timestamp" json:"timestamp"`
	Dose         *float64  `db:"dose" json:"dose,omitempty"`
	Yield        *float64  `db:"yield" json:"yield,omitempty"`
	Rating       *int      `db:"rating" json:"rating,omitempty"`
	TastingNotes *string   `db:"tasting_notes" json:"tasting_notes,omitempty"`
	Reflections  *string   `db:"reflections" json:"reflections,omitempty"`
}

// GrinderSuggestion is a generated grind-setting hint for a grinder paired
// with either a bag or a bean. Exactly one of BagID/BeanID is set.
type GrinderSuggestion struct {
	ID                  SuggestionID `db:"id" json:"id"`
	GrinderID           GrinderID    `db:"grinder_id" json:"grinder_id"`
	BagID               *BagID       `db:"bag_id" json:"bag_id,omitempty"`
	BeanID              *BeanID      `db:"bean_id" json:"bean_id,omitempty"`
	Suggestion          *float64     `db:"suggestion" json:"suggestion,omitempty"`
	FriendlySuggestion  *string      `db:"friendly_suggestion" json:"friendly_suggestion,omitempty"`
	SuggestionMethod    *string      `db:"suggestion_method" json:"suggestion_method,omitempty"`
	GenerationTimestamp *time.Time   `db:"generation_timestamp" json:"generation_timestamp,omitempty"`
}
