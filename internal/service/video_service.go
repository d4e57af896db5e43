package service

import (
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/config"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioJwt "github.com/twilio/twilio-go/client/jwt"
	video "github.com/twilio/twilio-go/rest/video/v1"
)

// VideoService mints Twilio video rooms and per-identity access tokens.
// No media handling happens here; Twilio stays a black box.
type VideoService struct {
	client *twilio.RestClient
	cfg    config.TwilioConfig
	log    *logrus.Logger
}

func NewVideoService(cfg config.TwilioConfig, log *logrus.Logger) *VideoService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.APIKey,
		Password:   cfg.APISecret,
		AccountSid: cfg.AccountSID,
	})
	return &VideoService{
		client: client,
		cfg:    cfg,
		log:    log,
	}
}

// CreateRoom creates a group room with the given unique name.
func (s *VideoService) CreateRoom(roomName string) error {
	params := &video.CreateRoomParams{}
	params.SetUniqueName(roomName)
	params.SetType("group")
	params.SetRecordParticipantsOnConnect(true)

	if _, err := s.client.VideoV1.CreateRoom(params); err != nil {
		s.log.Warnf("Failed to create video room %s: %+v", roomName, err)
		return err
	}
	return nil
}

// IssueToken mints a JWT granting the identity access to the room.
func (s *VideoService) IssueToken(roomName, identity string) (string, error) {
	token := twilioJwt.CreateAccessToken(twilioJwt.AccessTokenParams{
		AccountSid:    s.cfg.AccountSID,
		SigningKeySid: s.cfg.APIKey,
		Secret:        s.cfg.APISecret,
		Identity:      identity,
	})
	token.AddGrant(&twilioJwt.VideoGrant{Room: roomName})
	return token.ToJwt()
}
