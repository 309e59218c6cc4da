package app

import (
	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/domain"
)

func (o *Orchestrator) AddFeature(roomID domain.RoomID, name string) error {
	if roomID == "" {
		return domain.ErrEmptyRoomID
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	feature, err := domain.NewFeature(domain.FeatureID(o.IDs.NewID()), name)
	if err != nil {
		return err
	}
	room.Features = append(room.Features, feature)
	log.Info().Str("module", "app.orch").Str("room", string(roomID)).Str("feature", string(feature.ID)).Msg("feature added")
	o.offerSnapshot(room)
	o.broadcastRoom(room)
	return nil
}

func (o *Orchestrator) AddStory(roomID domain.RoomID, featureID domain.FeatureID, name, url string) error {
	if roomID == "" {
		return domain.ErrEmptyRoomID
	}
	if featureID == "" {
		return domain.ErrFeatureNotFound
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	feature := room.Feature(featureID)
	if feature == nil {
		return domain.ErrFeatureNotFound
	}
	story, err := domain.NewStory(domain.StoryID(o.IDs.NewID()), name, url)
	if err != nil {
		return err
	}
	feature.Stories = append(feature.Stories, story)
	log.Info().Str("module", "app.orch").Str("room", string(roomID)).Str("story", string(story.ID)).Msg("story added")
	o.offerSnapshot(room)
	o.broadcastRoom(room)
	return nil
}

// SelectStory resets the voting round. The story id is deliberately not
// resolved against the features tree: an unknown id just renders as
// nothing active on clients.
func (o *Orchestrator) SelectStory(roomID domain.RoomID, storyID domain.StoryID) error {
	if roomID == "" {
		return domain.ErrEmptyRoomID
	}
	if storyID == "" {
		return domain.ErrStoryNotFound
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.SelectStory(storyID)
	log.Info().Str("module", "app.orch").Str("room", string(roomID)).Str("story", string(storyID)).Msg("story selected")
	o.broadcastRoom(room)
	return nil
}

// UpdateStoryData replaces a story's final scores and/or url. Scores
// replace the whole breakdown and retotal the room; a non-nil url
// (empty string included) replaces the story url.
func (o *Orchestrator) UpdateStoryData(roomID domain.RoomID, storyID domain.StoryID, scores *domain.Scores, url *string) error {
	if roomID == "" {
		return domain.ErrEmptyRoomID
	}
	if storyID == "" {
		return domain.ErrStoryNotFound
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	story := room.Story(storyID)
	if story == nil {
		return domain.ErrStoryNotFound
	}
	if scores != nil {
		final, err := domain.FinalizeScores(*scores)
		if err != nil {
			return err
		}
		story.FinalScores = final
		room.Totals = RecomputeTotals(room)
	}
	if url != nil {
		story.URL = *url
	}
	log.Info().Str("module", "app.orch").Str("room", string(roomID)).Str("story", string(storyID)).Msg("story data updated")
	o.offerSnapshot(room)
	o.broadcastRoom(room)
	return nil
}

// FinishEstimation locks voting for the active story until another
// story is selected.
func (o *Orchestrator) FinishEstimation(roomID domain.RoomID) error {
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.EstimationFinished = true
	log.Info().Str("module", "app.orch").Str("room", string(roomID)).Msg("estimation finished")
	o.broadcastRoom(room)
	return nil
}
