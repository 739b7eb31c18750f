package usecase

import (
	"launchsync-service/internal/domain/entity"
	"launchsync-service/pkg/apperrors"
)

// Denormalize joins a raw launch with its referenced rocket and launchpad
// into one flat document ready for storage. Pure function of its inputs:
// no network access, no side effects. A nil rocket or launchpad leaves
// empty-string placeholders instead of failing the record; only a launch
// without a provider id is rejected, as MalformedRecordError. The success
// flag passes through verbatim, including the not-yet-determined case.
func Denormalize(raw entity.RawLaunch, rocket *entity.RawRocket, pad *entity.RawLaunchpad) (entity.Launch, error) {
	if raw.ID == "" {
		return entity.Launch{}, &apperrors.MalformedRecordError{Field: "id"}
	}

	launch := entity.Launch{
		ID:          raw.ID,
		Name:        raw.Name,
		LaunchDate:  raw.DateUTC,
		Details:     raw.Details,
		Success:     raw.Success,
		Upcoming:    raw.Upcoming,
		RocketID:    raw.Rocket,
		LaunchpadID: raw.Launchpad,
	}
	if rocket != nil {
		launch.RocketName = rocket.Name
	}
	if pad != nil {
		launch.LaunchpadName = pad.Name
		launch.LaunchpadSite = pad.FullName
	}
	return launch, nil
}
