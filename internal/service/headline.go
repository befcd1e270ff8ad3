package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"clip-automator/config"
	"clip-automator/internal/highlight"
	"clip-automator/internal/types"
	"clip-automator/log"
	"clip-automator/pkg/util"

	"go.uber.org/zap"
)

const headlineMaxRunes = 60

// buildHeadline produces the banner text for one clip. The LLM gets the
// first shot when enabled; any failure falls back to a deterministic
// headline built from the window's own text.
func (s Service) buildHeadline(stepParam *types.ClipTaskStepParam, window highlight.ClipWindow) string {
	fallback := autoHeadline(window.HeadlineHint, stepParam.TaskPtr.Title)

	if !config.Conf.Llm.Enabled || s.ChatCompleter == nil {
		return fallback
	}

	category := stepParam.Category
	if category == "" {
		category = config.Conf.Headline.Category
	}
	excerpt := util.TruncateRunes(window.HeadlineHint, 400)
	prompt := fmt.Sprintf(types.HeadlinePrompt, category, stepParam.TaskPtr.Title, excerpt)

	reply, err := s.ChatCompleter.ChatCompletion(prompt)
	if err != nil {
		log.GetLogger().Warn("headline generation failed, using fallback",
			zap.String("taskId", stepParam.TaskId), zap.Error(err))
		return fallback
	}

	var parsed struct {
		Headline string `json:"headline"`
	}
	if err = json.Unmarshal([]byte(util.ExtractJsonFromText(reply)), &parsed); err != nil || strings.TrimSpace(parsed.Headline) == "" {
		log.GetLogger().Warn("headline reply unparseable, using fallback",
			zap.String("taskId", stepParam.TaskId), zap.String("reply", util.TruncateRunes(reply, 200)))
		return fallback
	}

	return util.TruncateRunes(strings.ToUpper(strings.TrimSpace(parsed.Headline)), headlineMaxRunes)
}

// autoHeadline upper-cases the strongest text we have for the window.
func autoHeadline(hint, videoTitle string) string {
	text := strings.TrimSpace(hint)
	if text == "" {
		text = strings.TrimSpace(videoTitle)
	}
	if text == "" {
		return ""
	}
	return util.TruncateRunes(strings.ToUpper(text), headlineMaxRunes)
}
