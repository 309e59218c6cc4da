package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/core"
	"github.com/avoron/planpoker/internal/domain"
)

// Inbound command taxonomy. DISCONNECT is implicit, fired by the read
// pump when the connection drops.
const (
	cmdJoinRoom         = "JOIN_ROOM"
	cmdLeaveRoom        = "LEAVE_ROOM"
	cmdAddFeature       = "ADD_FEATURE"
	cmdAddStory         = "ADD_STORY"
	cmdSelectStory      = "SELECT_STORY"
	cmdSendVote         = "SEND_VOTE"
	cmdRevealCards      = "REVEAL_CARDS"
	cmdUpdateStoryData  = "UPDATE_STORY_DATA"
	cmdFinishEstimation = "FINISH_ESTIMATION"
	cmdDisconnect       = "DISCONNECT"
)

const EventHello = "HELLO"

type helloEvent struct {
	Type    string `json:"type"`
	Session string `json:"session"`
}

func (ctl *Controller) handleCommand(sid core.SessionID, c *WsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.badPayload(c, "")
		return
	}

	switch env.Type {
	case cmdJoinRoom:
		ctl.handleJoin(sid, c, data)
	case cmdLeaveRoom:
		ctl.Orch.Do(cmdLeaveRoom, sid, func() error {
			return ctl.Orch.Leave(sid)
		})
	case cmdAddFeature:
		ctl.handleAddFeature(sid, c, data)
	case cmdAddStory:
		ctl.handleAddStory(sid, c, data)
	case cmdSelectStory:
		ctl.handleSelectStory(sid, c, data)
	case cmdSendVote:
		ctl.handleSendVote(sid, c, data)
	case cmdRevealCards:
		ctl.handleRevealCards(sid, c, data)
	case cmdUpdateStoryData:
		ctl.handleUpdateStoryData(sid, c, data)
	case cmdFinishEstimation:
		ctl.handleFinishEstimation(sid, c, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown command")
	}
}

// badPayload keeps the baseline silent-drop contract; the ERROR event
// goes out only when the error channel is switched on.
func (ctl *Controller) badPayload(c *WsConn, kind string) {
	if !ctl.Orch.EmitErrors {
		return
	}
	ctl.sendJSON(c, map[string]any{
		"type":    "ERROR",
		"command": kind,
		"error":   "bad_payload",
	})
}

func (ctl *Controller) handleJoin(sid core.SessionID, c *WsConn, data []byte) {
	type joinPayload struct {
		Type          string `json:"type"`
		RoomID        string `json:"roomId"`
		UserName      string `json:"userName"`
		Role          string `json:"role"`
		IsScrumMaster bool   `json:"isScrumMaster"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.badPayload(c, cmdJoinRoom)
		return
	}
	ctl.Orch.Do(cmdJoinRoom, sid, func() error {
		return ctl.Orch.Join(sid, domain.RoomID(p.RoomID), p.UserName, domain.Role(p.Role), p.IsScrumMaster)
	})
}

func (ctl *Controller) handleAddFeature(sid core.SessionID, c *WsConn, data []byte) {
	type addFeaturePayload struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
		Name   string `json:"name"`
	}
	var p addFeaturePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad add feature payload")
		ctl.badPayload(c, cmdAddFeature)
		return
	}
	ctl.Orch.Do(cmdAddFeature, sid, func() error {
		return ctl.Orch.AddFeature(domain.RoomID(p.RoomID), p.Name)
	})
}

func (ctl *Controller) handleAddStory(sid core.SessionID, c *WsConn, data []byte) {
	type addStoryPayload struct {
		Type      string `json:"type"`
		RoomID    string `json:"roomId"`
		FeatureID string `json:"featureId"`
		StoryName string `json:"storyName"`
		StoryURL  string `json:"storyUrl"`
	}
	var p addStoryPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad add story payload")
		ctl.badPayload(c, cmdAddStory)
		return
	}
	ctl.Orch.Do(cmdAddStory, sid, func() error {
		return ctl.Orch.AddStory(domain.RoomID(p.RoomID), domain.FeatureID(p.FeatureID), p.StoryName, p.StoryURL)
	})
}

func (ctl *Controller) handleSelectStory(sid core.SessionID, c *WsConn, data []byte) {
	type selectStoryPayload struct {
		Type    string `json:"type"`
		RoomID  string `json:"roomId"`
		StoryID string `json:"storyId"`
	}
	var p selectStoryPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad select story payload")
		ctl.badPayload(c, cmdSelectStory)
		return
	}
	ctl.Orch.Do(cmdSelectStory, sid, func() error {
		return ctl.Orch.SelectStory(domain.RoomID(p.RoomID), domain.StoryID(p.StoryID))
	})
}

// handleSendVote refuses anything that is not a JSON number: a vote
// must never be coerced into NaN on the document.
func (ctl *Controller) handleSendVote(sid core.SessionID, c *WsConn, data []byte) {
	type sendVotePayload struct {
		Type   string   `json:"type"`
		RoomID string   `json:"roomId"`
		Vote   *float64 `json:"vote"`
	}
	var p sendVotePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad vote payload")
		ctl.badPayload(c, cmdSendVote)
		return
	}
	if p.Vote == nil {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("vote missing or non-numeric")
		ctl.badPayload(c, cmdSendVote)
		return
	}
	vote := *p.Vote
	ctl.Orch.Do(cmdSendVote, sid, func() error {
		return ctl.Orch.Vote(sid, domain.RoomID(p.RoomID), vote)
	})
}

func (ctl *Controller) handleRevealCards(sid core.SessionID, c *WsConn, data []byte) {
	type revealPayload struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	var p revealPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad reveal payload")
		ctl.badPayload(c, cmdRevealCards)
		return
	}
	ctl.Orch.Do(cmdRevealCards, sid, func() error {
		return ctl.Orch.Reveal(domain.RoomID(p.RoomID))
	})
}

func (ctl *Controller) handleUpdateStoryData(sid core.SessionID, c *WsConn, data []byte) {
	type updateStoryPayload struct {
		Type    string         `json:"type"`
		RoomID  string         `json:"roomId"`
		StoryID string         `json:"storyId"`
		Scores  *domain.Scores `json:"scores"`
		URL     *string        `json:"url"`
	}
	var p updateStoryPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad update story payload")
		ctl.badPayload(c, cmdUpdateStoryData)
		return
	}
	ctl.Orch.Do(cmdUpdateStoryData, sid, func() error {
		return ctl.Orch.UpdateStoryData(domain.RoomID(p.RoomID), domain.StoryID(p.StoryID), p.Scores, p.URL)
	})
}

func (ctl *Controller) handleFinishEstimation(sid core.SessionID, c *WsConn, data []byte) {
	type finishPayload struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	var p finishPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad finish payload")
		ctl.badPayload(c, cmdFinishEstimation)
		return
	}
	ctl.Orch.Do(cmdFinishEstimation, sid, func() error {
		return ctl.Orch.FinishEstimation(domain.RoomID(p.RoomID))
	})
}
