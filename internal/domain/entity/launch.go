// internal/domain/entity/launch.go
package entity

import (
	"time"
)

// RawLaunch is a launch record exactly as the provider returns it.
// Only the fields the transformer reads are decoded; the rest of the
// provider document is ignored.
type RawLaunch struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	DateUTC   *time.Time `json:"date_utc"`
	Details   string     `json:"details"`
	Success   *bool      `json:"success"`
	Upcoming  bool       `json:"upcoming"`
	Rocket    string     `json:"rocket"`
	Launchpad string     `json:"launchpad"`
}

// RawRocket is a rocket record from the provider.
type RawRocket struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawLaunchpad is a launchpad record from the provider.
type RawLaunchpad struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// Launch is the denormalized, persisted unit. One document per provider
// launch id; the id never changes, every other field is replaced on each
// sync. Success is tri-state: nil means the outcome is not yet known.
type Launch struct {
	ID            string     `bson:"_id" json:"id"`
	Name          string     `bson:"name" json:"name"`
	LaunchDate    *time.Time `bson:"dateUtc" json:"launch_date"`
	Details       string     `bson:"details" json:"details"`
	Success       *bool      `bson:"success" json:"success"`
	Upcoming      bool       `bson:"upcoming" json:"upcoming"`
	RocketID      string     `bson:"rocketId" json:"rocket_id"`
	RocketName    string     `bson:"rocketName" json:"rocket_name"`
	LaunchpadID   string     `bson:"launchpadId" json:"launchpad_id"`
	LaunchpadName string     `bson:"launchpadName" json:"launchpad_name"`
	LaunchpadSite string     `bson:"launchpadSite" json:"launchpad_site"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updated_at"`
}
