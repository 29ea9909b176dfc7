// Package reward scores an assistant completion by how well it agrees with
// evidence retrieved from the web.
package reward

import (
	"context"
	"log/slog"

	"github.com/use-agent/groundtruth/config"
	"github.com/use-agent/groundtruth/models"
)

// Querier returns evidence URLs for a query. *search.Querier satisfies it.
type Querier interface {
	Query(ctx context.Context, text string) ([]string, error)
}

// Documents resolves a URL to extracted text. *extract.Service satisfies it.
type Documents interface {
	Document(ctx context.Context, url string, steps ...models.InteractionStep) (*models.Document, error)
}

// Completer is the language-model backend. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Scorer computes rewards. Calls are sequential: documents are fetched and
// scored one after another through the shared browser session.
type Scorer struct {
	querier Querier
	docs    Documents
	llm     Completer
	cfg     config.RewardConfig
}

// NewScorer creates a Scorer.
func NewScorer(q Querier, docs Documents, llm Completer, cfg config.RewardConfig) *Scorer {
	return &Scorer{querier: q, docs: docs, llm: llm, cfg: cfg}
}

// Score returns the mean agreement of completion with the evidence found for
// prompt+completion, in [-1, 1].
func (s *Scorer) Score(ctx context.Context, prompt, completion string) (float64, error) {
	report, err := s.Evaluate(ctx, prompt, completion)
	if err != nil {
		return 0, err
	}
	return report.Reward, nil
}

// Evaluate is Score with the per-document samples.
//
// A results page without a results container yields a neutral reward with
// NoEvidence set. Every other retrieval, extraction or backend error is
// returned.
func (s *Scorer) Evaluate(ctx context.Context, prompt, completion string) (*models.RewardReport, error) {
	urls, err := s.querier.Query(ctx, prompt+completion)
	if err != nil {
		if models.IsKind(err, models.KindResultsContainerMissing) {
			slog.Warn("reward: no results container, returning neutral reward", "error", err)
			return &models.RewardReport{Samples: []models.ScoreSample{}, NoEvidence: true}, nil
		}
		return nil, err
	}

	report := &models.RewardReport{Samples: make([]models.ScoreSample, 0, len(urls))}
	for _, url := range urls {
		doc, err := s.docs.Document(ctx, url)
		if err != nil {
			return nil, err
		}
		sample, err := s.ScoreDocument(ctx, prompt, completion, doc)
		if err != nil {
			return nil, err
		}
		report.Samples = append(report.Samples, sample)
	}

	report.Reward = mean(report.Samples)
	slog.Info("reward: scored",
		"documents", len(report.Samples),
		"reward", report.Reward,
	)
	return report, nil
}

// ScoreDocument asks the backend to rate one document. An unparseable reply
// becomes a 0 sample with Parsed unset, not an error.
func (s *Scorer) ScoreDocument(ctx context.Context, prompt, completion string, doc *models.Document) (models.ScoreSample, error) {
	text := truncateRunes(doc.Text, s.cfg.MaxDocumentChars)
	p := BuildPrompt(prompt, completion, text)
	slog.Debug("reward: scoring document",
		"url", doc.URL, "est_tokens", estimateTokens(p),
	)

	reply, err := s.llm.Complete(ctx, p)
	if err != nil {
		return models.ScoreSample{}, err
	}

	sample := models.ScoreSample{URL: doc.URL, Reply: reply}
	score, err := ParseScore(reply)
	if err != nil {
		slog.Warn("reward: unparseable score, using 0",
			"url", doc.URL, "reply", reply, "error", err,
		)
		return sample, nil
	}
	sample.Score = score
	sample.Parsed = true
	return sample, nil
}

// mean averages sample scores; no samples averages to 0.
func mean(samples []models.ScoreSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s.Score
	}
	return sum / float64(len(samples))
}
