package serviceImp

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/logger"
	repo "kisan/pkg/pest/repository"
	"kisan/pkg/pest/service"
	"kisan/pkg/validate"
)

// MaxImageBytes bounds an uploaded crop photo.
const MaxImageBytes = 5 << 20

type pestSvc struct {
	pests      repo.PestRepository
	classifier service.Classifier
}

func NewPestService(pests repo.PestRepository, classifier service.Classifier) service.PestService {
	return &pestSvc{pests: pests, classifier: classifier}
}

func (s *pestSvc) ByCrop(ctx context.Context, crop string) (*service.CropIssues, error) {
	if strings.TrimSpace(crop) == "" {
		return nil, apperr.Validation("crop name is required")
	}
	issues, err := s.pests.ByCrop(ctx, crop)
	if err != nil {
		return nil, err
	}
	out := &service.CropIssues{
		Success:      true,
		Pests:        []entities.PestDisease{},
		Diseases:     []entities.PestDisease{},
		Deficiencies: []entities.PestDisease{},
		Total:        len(issues),
	}
	for _, p := range issues {
		switch p.Type {
		case entities.IssuePest:
			out.Pests = append(out.Pests, p)
		case entities.IssueDisease:
			out.Diseases = append(out.Diseases, p)
		case entities.IssueDeficiency:
			out.Deficiencies = append(out.Deficiencies, p)
		}
	}
	return out, nil
}

func (s *pestSvc) Search(ctx context.Context, q string) ([]entities.PestDisease, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apperr.Validation("search query is required")
	}
	return s.pests.Search(ctx, q)
}

func (s *pestSvc) Report(ctx context.Context, uid string, in service.ReportInput) (*entities.PestDisease, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	p := &entities.PestDisease{
		Name:          strings.TrimSpace(in.Name),
		Type:          in.Type,
		AffectedCrops: in.AffectedCrops,
		Symptoms:      in.Symptoms,
		Location:      in.Location,
		Severity:      "medium",
		Status:        entities.IssueReported,
		ReportedBy:    uid,
	}
	if len(in.Images) > 0 {
		p.Image = in.Images[0]
	}
	if err := s.pests.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.L().Info("pest reported", zap.String("uid", uid), zap.String("name", p.Name))
	return p, nil
}

func (s *pestSvc) Identify(ctx context.Context, image []byte) (*service.Identification, error) {
	if len(image) == 0 {
		return nil, apperr.Validation("image is required")
	}
	if len(image) > MaxImageBytes {
		return nil, apperr.Validation("image is too large")
	}
	mime := http.DetectContentType(image)
	if !strings.HasPrefix(mime, "image/") {
		return nil, apperr.Validation("file is not an image")
	}

	d, err := s.classifier.ClassifyPestImage(ctx, image, mime)
	if err != nil {
		return nil, err
	}
	out := &service.Identification{Type: service.Healthy, Confidence: d.Confidence, Matches: []entities.PestDisease{}}
	if d.Healthy {
		return out, nil
	}
	out.Type = service.PestDetected
	out.Name = d.Name
	out.Details = d.Description
	out.Treatment = d.Treatment
	matches, err := s.pests.ByName(ctx, d.Name)
	if err != nil {
		logger.L().Warn("catalog match failed", zap.String("name", d.Name), zap.Error(err))
		return out, nil
	}
	out.Matches = matches
	return out, nil
}
