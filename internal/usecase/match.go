package usecase

import (
	"sort"

	"go.uber.org/zap"

	"tendermatch/internal/domain"
)

// MatchUseCase ranks stored tenders against a company profile by embedding
// similarity.
type MatchUseCase struct {
	pipeline  *Pipeline
	extractor *ProfileExtractor
	topK      int
	// distanceScale calibrates similarity = (1 - distance/scale) * 100.
	// The value is tied to the distance distribution of the embedding
	// model; it is configuration, not a universal constant.
	distanceScale float64
	logger        *zap.Logger
}

// NewMatchUseCase creates a match use case.
func NewMatchUseCase(p *Pipeline, extractor *ProfileExtractor, topK int, distanceScale float64, logger *zap.Logger) *MatchUseCase {
	if topK <= 0 {
		topK = 10
	}
	if distanceScale <= 0 {
		distanceScale = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchUseCase{
		pipeline:      p,
		extractor:     extractor,
		topK:          topK,
		distanceScale: distanceScale,
		logger:        logger,
	}
}

// MatchProfile runs the full matching request: structured extraction of the
// company profile, embedding, similarity search and ranking. Failures
// inside the pipeline degrade; the report never carries a panic outward.
func (u *MatchUseCase) MatchProfile(profileText string) domain.MatchReport {
	if profileText == "" {
		return domain.MatchReport{
			Status:          domain.StatusError,
			Message:         "no company profile provided",
			Recommendations: []domain.Recommendation{},
		}
	}

	profile := u.extractor.Extract(profileText)

	vecs, err := u.pipeline.Embedder().Embed([]string{profile.Description})
	if err != nil || len(vecs) != 1 {
		u.logger.Error("failed to embed company profile", zap.Error(err))
		vecs = [][]float32{make([]float32, u.pipeline.Embedder().Dimension())}
	}
	profile.Embedding = vecs[0]

	recommendations := u.Match(profile.Embedding, u.topK)

	return domain.MatchReport{
		Status:          domain.StatusSuccess,
		CompanyInfo:     &profile,
		Recommendations: recommendations,
	}
}

// MatchProfileFile runs a matching request from uploaded file bytes.
func (u *MatchUseCase) MatchProfileFile(content []byte, fileType string) domain.MatchReport {
	text, err := ProfileTextFromFile(content, fileType)
	if err != nil {
		return domain.MatchReport{
			Status:          domain.StatusError,
			Message:         err.Error(),
			Recommendations: []domain.Recommendation{},
		}
	}
	return u.MatchProfile(text)
}

// Match returns up to topK recommendations for a company embedding, most
// similar first. An absent or empty index yields an empty slice, not an
// error.
func (u *MatchUseCase) Match(companyEmbedding []float32, topK int) []domain.Recommendation {
	tenders := u.pipeline.Tenders()
	idx := u.pipeline.Index()

	if idx.Size() == 0 || len(tenders) == 0 {
		u.logger.Warn("no tenders or index available for matching")
		return []domain.Recommendation{}
	}

	k := topK
	if idx.Size() < k {
		k = idx.Size()
	}

	distances, ordinals, err := idx.Search(companyEmbedding, k)
	if err != nil {
		u.logger.Error("vector search failed", zap.Error(err))
		return []domain.Recommendation{}
	}

	recommendations := make([]domain.Recommendation, 0, len(ordinals))
	for i, ordinal := range ordinals {
		if ordinal < 0 || ordinal >= len(tenders) {
			u.logger.Error("search returned ordinal outside store range",
				zap.Int("ordinal", ordinal),
				zap.Int("store_size", len(tenders)))
			continue
		}

		tender := tenders[ordinal]
		recommendations = append(recommendations, domain.Recommendation{
			TenderID:        tender.ID,
			TenderTitle:     tender.Title,
			SimilarityScore: Similarity(distances[i], u.distanceScale),
			TenderDetails:   tender,
		})
	}

	// The index already returns ascending-distance order; this stable sort
	// is the single source of truth for presentation order and keeps
	// neighbor order among equal scores.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].SimilarityScore > recommendations[j].SimilarityScore
	})

	return recommendations
}

// Similarity converts an L2 distance to a bounded 0-100 score via the
// linear mapping (1 - distance/scale) * 100, clamped at both ends.
func Similarity(distance, scale float64) float64 {
	score := (1 - distance/scale) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
