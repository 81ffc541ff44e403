package workflow

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/01moynul/taptosell-creatives/internal/apperr"
	"github.com/01moynul/taptosell-creatives/internal/models"
)

// Gateway is the set of generation calls the orchestrator needs.
type Gateway interface {
	ImportProduct(ctx context.Context, url string, language models.Language) (models.Product, error)
	GenerateVideoScript(ctx context.Context, product models.Product, platform models.Platform, language models.Language) (string, error)
	GenerateLifestyleImage(ctx context.Context, product models.Product) (string, error)
	GenerateAdCopy(ctx context.Context, product models.Product, platform models.Platform, language models.Language) (string, error)
	GenerateSalesPage(ctx context.Context, product models.Product, language models.Language) (models.SalesPage, error)
}

// Reporter is told about credential outcomes of generation calls.
type Reporter interface {
	ReportSuccess()
	ReportCredentialFailure()
}

// Orchestrator runs workflow actions against one session's Store.
//
// Actions are detached from the caller's cancellation: once issued, a
// generation call runs until it succeeds or fails. The orchestrator does not
// de-duplicate concurrent triggers of the same kind.
type Orchestrator struct {
	Store    *Store
	Gateway  Gateway
	Reporter Reporter
	Logger   *slog.Logger
}

func NewOrchestrator(store *Store, gw Gateway, reporter Reporter, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{Store: store, Gateway: gw, Reporter: reporter, Logger: logger}
}

// Import fetches the product behind url and moves the flow to CREATIVES.
// It is only allowed once, at the IMPORT step.
func (o *Orchestrator) Import(ctx context.Context, url string, language models.Language) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return apperr.InvalidErr("A URL do produto é obrigatória.", map[string]string{"url": "required"})
	}
	if !language.Valid() {
		return apperr.InvalidErr("Idioma não suportado.", map[string]string{"language": "oneof"})
	}
	if o.Store.Snapshot().Step != models.StepImport {
		return apperr.ConflictErr("O produto já foi importado nesta sessão.")
	}

	ctx = context.WithoutCancel(ctx)
	release := o.Store.Begin(models.KindImporting)
	defer release()

	product, err := o.Gateway.ImportProduct(ctx, url, language)
	if err != nil {
		return o.fail(err, models.KindImporting, "importar produto")
	}
	o.succeed()

	step := models.StepCreatives
	o.Store.Update(Patch{Product: &product, Language: &language, Step: &step})
	o.Logger.Info("product imported", "title", product.Title, "language", language)
	return nil
}

// GenerateCreative runs the video, images or copy action.
func (o *Orchestrator) GenerateCreative(ctx context.Context, kind models.Kind) error {
	snap := o.Store.Snapshot()
	if snap.Product == nil {
		return apperr.ConflictErr("Importe um produto antes de gerar criativos.")
	}
	if snap.Step != models.StepCreatives {
		return apperr.ConflictErr("Os criativos só podem ser gerados na etapa de criativos.")
	}
	product, language := *snap.Product, snap.Language

	var run func(ctx context.Context) (*CreativePatch, error)
	switch kind {
	case models.KindVideo:
		run = func(ctx context.Context) (*CreativePatch, error) {
			script, err := o.Gateway.GenerateVideoScript(ctx, product, models.PlatformTikTok, language)
			if err != nil {
				return nil, err
			}
			return &CreativePatch{VideoScript: &script}, nil
		}
	case models.KindImages:
		run = func(ctx context.Context) (*CreativePatch, error) {
			images, err := joinAll(ctx, models.LifestyleImageCount, func(ctx context.Context, _ int) (string, error) {
				return o.Gateway.GenerateLifestyleImage(ctx, product)
			})
			if err != nil {
				return nil, err
			}
			return &CreativePatch{LifestyleImages: images}, nil
		}
	case models.KindCopy:
		run = func(ctx context.Context) (*CreativePatch, error) {
			texts, err := joinAll(ctx, len(models.Platforms), func(ctx context.Context, i int) (string, error) {
				return o.Gateway.GenerateAdCopy(ctx, product, models.Platforms[i], language)
			})
			if err != nil {
				return nil, err
			}
			return &CreativePatch{AdCopy: &models.AdCopy{TikTok: texts[0], Facebook: texts[1], Reels: texts[2]}}, nil
		}
	default:
		return apperr.InvalidErr("Tipo de criativo desconhecido.", map[string]string{"kind": "oneof"})
	}

	ctx = context.WithoutCancel(ctx)
	release := o.Store.Begin(kind)
	defer release()

	patch, err := run(ctx)
	if err != nil {
		return o.fail(err, kind, "gerar "+string(kind))
	}
	o.succeed()
	o.Store.Update(Patch{Creative: patch})
	o.Logger.Info("creative generated", "kind", kind, "product", product.Title)
	return nil
}

// GenerateSalesPage builds the landing page. It never changes the step.
func (o *Orchestrator) GenerateSalesPage(ctx context.Context) error {
	snap := o.Store.Snapshot()
	if snap.Product == nil || snap.Step != models.StepSalesPage {
		return apperr.ConflictErr("Avance para a etapa da página de vendas primeiro.")
	}
	product, language := *snap.Product, snap.Language

	ctx = context.WithoutCancel(ctx)
	release := o.Store.Begin(models.KindPage)
	defer release()

	page, err := o.Gateway.GenerateSalesPage(ctx, product, language)
	if err != nil {
		return o.fail(err, models.KindPage, "gerar a página de vendas")
	}
	o.succeed()
	o.Store.Update(Patch{SalesPage: &page})
	o.Logger.Info("sales page generated", "product", product.Title)
	return nil
}

// Advance moves the flow from CREATIVES to SALES_PAGE.
func (o *Orchestrator) Advance() error {
	if o.Store.Snapshot().Step != models.StepCreatives {
		return apperr.ConflictErr("Só é possível avançar a partir da etapa de criativos.")
	}
	next := models.StepSalesPage
	o.Store.Update(Patch{Step: &next})
	return nil
}

// SetMargin changes the markup used to derive the selling price.
func (o *Orchestrator) SetMargin(margin float64) error {
	if math.IsNaN(margin) || math.IsInf(margin, 0) || margin < models.MinMargin {
		return apperr.InvalidErr("A margem deve ser maior ou igual a -100%.", map[string]string{"margin": "gte=-100"})
	}
	o.Store.Update(Patch{Margin: &margin})
	return nil
}

func (o *Orchestrator) succeed() {
	if o.Reporter != nil {
		o.Reporter.ReportSuccess()
	}
}

// fail classifies err, locks the guard on credential problems and returns
// an error that always carries an apperr kind.
func (o *Orchestrator) fail(err error, kind models.Kind, op string) error {
	ae, ok := apperr.As(err)
	if !ok {
		ae = apperr.E(apperr.Generation, op, err)
	} else if ae.Op == "" {
		tagged := *ae
		tagged.Op = op
		ae = &tagged
	}
	if ae.Kind == apperr.Credential && o.Reporter != nil {
		o.Reporter.ReportCredentialFailure()
	}
	o.Logger.Error("failed to "+op, "kind", kind, "error_kind", ae.Kind, "error", err)
	return ae
}
