package service

import (
	"clip-automator/config"
	"clip-automator/internal/types"
	"clip-automator/log"
	"clip-automator/pkg/openai"
	"clip-automator/pkg/twitch"

	"go.uber.org/zap"
)

type Service struct {
	Transcriber   types.Transcriber
	ChatCompleter types.ChatCompleter
	TwitchClient  *twitch.Client
}

func NewService() *Service {
	transcriber := openai.NewClient(
		config.Conf.Transcribe.BaseUrl,
		config.Conf.Transcribe.ApiKey,
		"",
		config.Conf.App.Proxy,
	)

	chatCompleter := openai.NewClient(
		config.Conf.Llm.BaseUrl,
		config.Conf.Llm.ApiKey,
		config.Conf.Llm.Model,
		config.Conf.App.Proxy,
	)

	var twitchClient *twitch.Client
	if config.Conf.Twitch.ClientId != "" {
		twitchClient = twitch.NewClient(
			config.Conf.Twitch.ClientId,
			config.Conf.Twitch.ClientSecret,
			config.Conf.App.Proxy,
		)
	} else {
		log.GetLogger().Info("twitch credentials not configured, clip intake disabled")
	}

	log.GetLogger().Info("service initialized",
		zap.String("transcribe model", config.Conf.Transcribe.Model),
		zap.String("llm model", config.Conf.Llm.Model))

	return &Service{
		Transcriber:   transcriber,
		ChatCompleter: chatCompleter,
		TwitchClient:  twitchClient,
	}
}
