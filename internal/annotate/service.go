package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/gao4263/CineLearn-AI/internal/job"
)

// Store persists generated annotations. Satisfied by the db package.
type Store interface {
	CreateAnnotation(a Annotation) error
}

// Service manages annotation engines and processes generation jobs
type Service struct {
	engines map[string]Generator
	store   Store
}

// NewService creates an annotation service. Engine credentials come from
// setting resolvers, so keys added or rotated through the settings API are
// picked up on the next generation call.
func NewService(store Store, geminiKey, geminiModel, openAIKey SettingResolver) *Service {
	s := &Service{
		engines: make(map[string]Generator),
		store:   store,
	}
	s.engines["gemini"] = NewGeminiGenerator(geminiKey, geminiModel)
	s.engines["openai"] = NewOpenAIGenerator(openAIKey)
	log.Printf("[annotate] registered engines: gemini, openai")
	return s
}

// Engines returns the names of the engines with credentials configured.
func (s *Service) Engines() []string {
	names := make([]string, 0, len(s.engines))
	for name, engine := range s.engines {
		if engine.Ready() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HandleJob processes an annotation generation job. A failure is scoped to
// the job's single subtitle line: other lines keep their annotations and
// the caller may enqueue the same line again.
func (s *Service) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.AnnotateParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	name := params.Engine
	if name == "" {
		name = "gemini"
	}
	engine, ok := s.engines[name]
	if !ok {
		return fmt.Errorf("unknown annotation engine: %s", name)
	}
	if params.SubtitleID == "" || params.LineText == "" {
		return fmt.Errorf("annotation job missing subtitle line")
	}

	log.Printf("[annotate] generating for cue %s: engine=%s", params.SubtitleID, name)
	updateProgress(0.1)

	points, err := engine.Generate(ctx, params.LineText, GenerateOptions{Context: params.Context})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	updateProgress(0.8)

	now := time.Now().UnixMilli()
	for _, p := range points {
		p.ID = uuid.New().String()
		p.VideoID = j.VideoID
		p.SubtitleID = params.SubtitleID
		p.Timestamp = now
		if err := s.store.CreateAnnotation(p); err != nil {
			return fmt.Errorf("save annotation: %w", err)
		}
	}

	log.Printf("[annotate] generation complete: %d points for cue %s", len(points), params.SubtitleID)

	resultJSON, _ := json.Marshal(job.AnnotateResult{Count: len(points)})
	j.Result = resultJSON

	updateProgress(1.0)
	return nil
}
