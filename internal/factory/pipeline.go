package factory

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/config"
	"github.com/voyagetravel/voyage-backend/internal/events"
	"github.com/voyagetravel/voyage-backend/internal/nlp"
	"github.com/voyagetravel/voyage-backend/internal/orchestrator"
	"github.com/voyagetravel/voyage-backend/internal/research"
	"github.com/voyagetravel/voyage-backend/internal/slots"
	"github.com/voyagetravel/voyage-backend/internal/transport"
)

// NewTurnPipeline assembles the conversational turn orchestrator. HTTP
// collaborators are used when their URLs are configured; otherwise each
// concern degrades to its in-repo fallback so the service starts with zero
// external dependencies.
func NewTurnPipeline(cfg *config.Config, bus *events.Bus, log zerolog.Logger) *orchestrator.Orchestrator {
	var classifier nlp.IntentClassifier
	var extractor nlp.SlotExtractor
	if cfg.NLPServiceURL != "" {
		timeout := time.Duration(cfg.NLPTimeoutSeconds) * time.Second
		classifier = nlp.NewHTTPClassifier(cfg.NLPServiceURL, timeout)
		extractor = nlp.NewHTTPExtractor(cfg.NLPServiceURL, timeout)
	} else {
		log.Warn().Msg("NLP service not configured; using keyword classifier and rule extractor")
		classifier = nlp.NewKeywordClassifier()
		extractor = nlp.NewRuleExtractor()
	}

	var provider research.Provider
	researchTimeout := time.Duration(cfg.ResearchTimeoutSeconds) * time.Second
	if cfg.ResearchServiceURL != "" {
		provider = research.NewHTTPProvider(cfg.ResearchServiceURL, researchTimeout)
	} else {
		log.Warn().Msg("research service not configured; using static destination advisories")
		provider = research.NewStaticProvider()
	}
	cache := research.NewCache(time.Duration(cfg.ResearchCacheTTLSeconds) * time.Second)
	researcher := research.NewResearcher(provider, cache, researchTimeout, log)

	var primary transport.Estimator
	if cfg.TransportServiceURL != "" {
		primary = transport.NewHTTPEstimator(cfg.TransportServiceURL, time.Duration(cfg.TransportTimeoutSeconds)*time.Second)
	} else {
		log.Warn().Msg("transport service not configured; category fallback serves all estimates")
	}
	estimator := transport.NewAdapter(primary, transport.NewCategoryEstimator(), log)

	merger := slots.NewMerger(cfg.DefaultLanguage)

	return orchestrator.New(classifier, extractor, researcher, estimator, merger, bus, log)
}
