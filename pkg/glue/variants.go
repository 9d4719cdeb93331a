package glue

import (
	"github.com/bastiangx/geophrase/internal/hotcache"
	"github.com/bastiangx/geophrase/pkg/errs"
	"github.com/bastiangx/geophrase/pkg/phraseidx"
	"github.com/bastiangx/geophrase/pkg/script"
)

// resolveToken produces the candidate variant list for one query token,
// per the table in SPEC_FULL.md §4.4. allowPrefix is true only for the
// last token of a query that requests prefix matching.
func (in *Instance) resolveToken(token string, maxD int, allowPrefix bool) ([]phraseidx.Variant, error) {
	key := hotcache.Key{Token: token, MaxDistance: maxD, AllowPrefix: allowPrefix}
	if in.cache != nil {
		if v, ok := in.cache.Get(key); ok {
			return v, nil
		}
	}

	var variants []phraseidx.Variant
	var err error
	if script.IsAlphabetic(token) {
		variants, err = in.resolveAlphabetic(token, maxD, allowPrefix)
	} else {
		variants, err = in.resolveNonAlphabetic(token, allowPrefix)
	}
	if err != nil {
		return nil, err
	}

	if in.cache != nil {
		in.cache.Put(key, variants)
	}
	return variants, nil
}

func (in *Instance) resolveAlphabetic(token string, maxD int, allowPrefix bool) ([]phraseidx.Variant, error) {
	candidates, err := in.fuzzy.Lookup(token, maxD)
	if err != nil {
		return nil, err
	}
	variants := make([]phraseidx.Variant, 0, len(candidates)+1)
	for _, c := range candidates {
		variants = append(variants, phraseidx.Exact(c.ID, c.Distance))
	}
	if allowPrefix {
		lo, hi, err := in.prefix.PrefixRange(token)
		if err == nil {
			variants = append(variants, phraseidx.Range(lo, hi))
		} else if err != errs.ErrNotFound {
			return nil, err
		}
	}
	return variants, nil
}

func (in *Instance) resolveNonAlphabetic(token string, allowPrefix bool) ([]phraseidx.Variant, error) {
	if allowPrefix {
		lo, hi, err := in.prefix.PrefixRange(token)
		if err == nil {
			return []phraseidx.Variant{phraseidx.Range(lo, hi)}, nil
		}
		if err != errs.ErrNotFound {
			return nil, err
		}
		// fall through to exact get
	}
	id, err := in.prefix.Get(token)
	if err != nil {
		if err == errs.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return []phraseidx.Variant{phraseidx.Exact(id, 0)}, nil
}
