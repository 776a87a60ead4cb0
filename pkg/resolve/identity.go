package resolve

import (
	"context"
	"strings"

	"github.com/Nackophilz/fankai-jellyfin/pkg/catalog"
	"github.com/Nackophilz/fankai-jellyfin/pkg/logger"
	"github.com/Nackophilz/fankai-jellyfin/pkg/normalize"
	"go.uber.org/zap"
)

// SeriesResolution is the outcome of IdentityValidator.Resolve. Drifted is set when the bound ID no
// longer described the local series; PreviousID then holds that ID so the caller can replace the binding.
type SeriesResolution struct {
	Series     *catalog.Series `json:"series,omitempty"`
	Drifted    bool            `json:"drifted"`
	PreviousID *int            `json:"previousId,omitempty"`
}

// IdentityValidator checks a bound series against the local names before trusting it
type IdentityValidator struct {
	catalog  catalog.Catalog
	resolver *SeriesResolver
}

func NewIdentityValidator(c catalog.Catalog, resolver *SeriesResolver) *IdentityValidator {
	return &IdentityValidator{
		catalog:  c,
		resolver: resolver,
	}
}

// Resolve trusts local.BoundID only while the canonical title still agrees with both the declared name
// and the folder name. Otherwise the binding is dropped and the series is searched again using the
// folder name. The returned resolution reports the drift even when the new search finds nothing.
func (v *IdentityValidator) Resolve(ctx context.Context, local LocalSeries) (SeriesResolution, error) {
	if local.BoundID == nil {
		series, err := v.resolver.Resolve(ctx, local)
		return SeriesResolution{Series: series}, err
	}

	log := logger.FromCtx(ctx).With(zap.Int("bound_id", *local.BoundID))

	canonical, err := v.catalog.GetSeriesByID(ctx, *local.BoundID)
	if err != nil {
		return SeriesResolution{}, err
	}

	if canonical != nil && Consistent(*canonical, local) {
		return SeriesResolution{Series: canonical}, nil
	}

	if canonical == nil {
		log.Warnw("bound series no longer in catalog")
	} else {
		log.Warnw("identity drift detected",
			zap.String("canonical_title", canonical.Title),
			zap.String("name", local.Name),
			zap.String("folder", local.Folder))
	}

	query := local.Folder
	if strings.TrimSpace(query) == "" {
		query = local.Name
	}

	resolution := SeriesResolution{
		Drifted:    true,
		PreviousID: local.BoundID,
	}

	series, err := v.resolver.Resolve(ctx, LocalSeries{
		Name:   query,
		Folder: local.Folder,
		Year:   local.Year,
	})
	if err != nil {
		return resolution, err
	}

	resolution.Series = series
	return resolution, nil
}

// Consistent reports whether the normalized title of series equals the normalized declared name and
// folder name of local. Empty local names are not compared. A series without a title is checked
// against its display title, then its original title.
func Consistent(series catalog.Series, local LocalSeries) bool {
	var canonical string
	for _, title := range series.Titles() {
		if canonical = normalize.Title(title); canonical != "" {
			break
		}
	}

	for _, name := range []string{local.Name, local.Folder} {
		key := normalize.Title(name)
		if key != "" && key != canonical {
			return false
		}
	}

	return true
}
