package ai

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/logger"
)

type CropAdviceRequest struct {
	SoilType          string
	WaterAvailability string
	District          string
	Season            string
	Weather           *entities.WeatherSnapshot
	Catalog           []string
}

type CropAdvice struct {
	Summary         string        `json:"summary" validate:"required"`
	Recommendations []AdvisedCrop `json:"recommendations" validate:"required,min=1,dive"`
}

type AdvisedCrop struct {
	Name       string   `json:"name" validate:"required"`
	Reason     string   `json:"reason" validate:"required"`
	Confidence float64  `json:"confidence" validate:"gte=0,lte=1"`
	Tips       []string `json:"tips"`
}

type PestDiagnosis struct {
	Healthy     bool     `json:"healthy"`
	Name        string   `json:"name" validate:"required_if=Healthy false"`
	Confidence  float64  `json:"confidence" validate:"gte=0,lte=1"`
	Description string   `json:"description"`
	Treatment   []string `json:"treatment"`
}

type ChatTurn struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type Advisor interface {
	CropAdvice(ctx context.Context, req CropAdviceRequest) (*CropAdvice, error)
	Chat(ctx context.Context, history []ChatTurn, message string) (string, error)
	ClassifyPestImage(ctx context.Context, image []byte, mime string) (*PestDiagnosis, error)
}

type advisor struct{ m Model }

func NewAdvisor(m Model) Advisor { return &advisor{m} }

const systemAgronomist = "You are an agricultural extension officer in Kerala, India. " +
	"Give practical, locally relevant advice to smallholder farmers."

const strictSuffix = "\n\nYour previous reply could not be parsed. Reply with ONE JSON object only, " +
	"no Markdown, no commentary, exactly the keys in the schema."

func (a *advisor) CropAdvice(ctx context.Context, req CropAdviceRequest) (*CropAdvice, error) {
	var out CropAdvice
	if err := a.structured(ctx, systemAgronomist, cropAdvicePrompt(req), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *advisor) ClassifyPestImage(ctx context.Context, image []byte, mime string) (*PestDiagnosis, error) {
	var out PestDiagnosis
	if err := a.structured(ctx, systemAgronomist, pestImagePrompt, image, mime, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *advisor) Chat(ctx context.Context, history []ChatTurn, message string) (string, error) {
	msgs := make([]Message, 0, len(history)+1)
	for _, t := range history {
		msgs = append(msgs, Message{Role: t.Role, Text: t.Content})
	}
	msgs = append(msgs, Message{Role: RoleUser, Text: message})
	reply, err := a.m.Generate(ctx, Request{
		System:   systemAgronomist + " Keep answers short and in the language the farmer writes in.",
		Messages: msgs,
	})
	if err != nil {
		return "", upstream(err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", apperr.BadFormat("AI assistant returned an empty reply", nil)
	}
	return reply, nil
}

// structured asks for JSON, retries once with a stricter prompt when the
// reply does not parse, then gives up with UpstreamFormat.
func (a *advisor) structured(ctx context.Context, system, prompt string, image []byte, mime string, dst any) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		p := prompt
		if attempt > 0 {
			p += strictSuffix
		}
		reply, err := a.m.Generate(ctx, Request{
			System:   system,
			Messages: []Message{{Role: RoleUser, Text: p, Image: image, MIME: mime}},
			JSON:     true,
		})
		if err != nil {
			return upstream(err)
		}
		if lastErr = DecodeStrict(reply, dst); lastErr == nil {
			return nil
		}
		logger.L().Warn("unparseable model reply",
			zap.String("model", a.m.Name()), zap.Int("attempt", attempt+1), zap.Error(lastErr))
	}
	return apperr.BadFormat("AI provider returned an unreadable answer", lastErr)
}

func upstream(err error) error {
	if apperr.KindOf(err) != apperr.KindInternal {
		return err
	}
	return apperr.Unavailable("AI provider unavailable", err)
}

func cropAdvicePrompt(r CropAdviceRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recommend up to 5 crops for a farm with soil %q and %q water availability", r.SoilType, r.WaterAvailability)
	if r.District != "" {
		fmt.Fprintf(&b, " in %s district", r.District)
	}
	if r.Season != "" {
		fmt.Fprintf(&b, " for the %s season", r.Season)
	}
	b.WriteString(".\n")
	if w := r.Weather; w != nil {
		fmt.Fprintf(&b, "Current weather: %s, %.1f°C, humidity %.0f%%, rainfall %.1f mm.\n",
			w.Condition, w.Temperature.Current, w.Humidity, w.Rainfall)
	}
	if len(r.Catalog) > 0 {
		fmt.Fprintf(&b, "Prefer crops from this list when suitable: %s.\n", strings.Join(r.Catalog, ", "))
	}
	b.WriteString(`Reply ONLY with JSON: {"summary":"...","recommendations":[{"name":"...","reason":"...","confidence":0.0,"tips":["..."]}]}`)
	return b.String()
}

const pestImagePrompt = `Examine this photo of a crop plant. Identify any pest, disease or nutrient deficiency.
Reply ONLY with JSON: {"healthy":false,"name":"...","confidence":0.0,"description":"...","treatment":["..."]}
Use "healthy":true and an empty name when the plant looks healthy. confidence is between 0 and 1.`
