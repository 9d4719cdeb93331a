package glue

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/geophrase/internal/utils"
	"github.com/bastiangx/geophrase/pkg/errs"
	"github.com/bastiangx/geophrase/pkg/fuzzyidx"
	"github.com/bastiangx/geophrase/pkg/phraseidx"
	"github.com/bastiangx/geophrase/pkg/wordid"
)

// Builder accumulates phrases (as already-tokenized word sequences) and
// emits the three on-disk indices plus their metadata at Finalize.
type Builder struct {
	collector       *wordid.Collector
	phrases         [][]string
	maxEditDistance int
	sourceFile      string
	finalized       bool
}

// NewBuilder creates an empty Builder. maxEditDistance is the fixed D the
// FuzzyIndex is built with (1 in this system).
func NewBuilder(maxEditDistance int) *Builder {
	return &Builder{
		collector:       wordid.NewCollector(),
		maxEditDistance: maxEditDistance,
	}
}

// SetSourceFile records the phrase source path for build.toml's
// operational record. Optional.
func (b *Builder) SetSourceFile(path string) {
	b.sourceFile = path
}

// AddPhrase records one phrase's word sequence. Insert order does not
// matter; words are accumulated into the dense id-assignment collector.
func (b *Builder) AddPhrase(words []string) error {
	if b.finalized {
		return errs.NewBuildError("glue.AddPhrase", errs.ErrAlreadyFinalized)
	}
	if len(words) == 0 {
		return errs.NewBuildError("glue.AddPhrase", errs.ErrEmptyPhrase)
	}
	for _, w := range words {
		b.collector.Add(w)
	}
	b.phrases = append(b.phrases, append([]string(nil), words...))
	return nil
}

// Finalize sorts and assigns word ids, then writes prefix.fst, fuzzy.fst,
// fuzzy.msg, phrase.fst, metadata.json, and build.toml into dir. dir must
// not already contain a built index.
func (b *Builder) Finalize(dir string) (Metadata, error) {
	if b.finalized {
		return Metadata{}, errs.NewBuildError("glue.Finalize", errs.ErrAlreadyFinalized)
	}
	b.finalized = true

	if err := utils.EnsureDir(dir); err != nil {
		return Metadata{}, errs.NewBuildError("glue.Finalize", err)
	}

	prefixPath, fuzzyFSTPath, fuzzySidePath, phrasePath, metadataPath, buildTOMLPath := layoutPaths(dir)

	sorted := b.collector.SortedWords()
	log.Debugf("glue: collected %d distinct words", len(sorted))

	prefixFile, err := os.Create(prefixPath)
	if err != nil {
		return Metadata{}, errs.NewBuildError("glue.Finalize", err)
	}
	sortedWords, err := wordid.Build(sorted, prefixFile)
	closeErr := prefixFile.Close()
	if err != nil {
		return Metadata{}, err
	}
	if closeErr != nil {
		return Metadata{}, errs.NewBuildError("glue.Finalize", closeErr)
	}
	log.Debugf("glue: finalized PrefixIndex (%d words)", len(sortedWords))

	wordToID := make(map[string]uint32, len(sortedWords))
	for id, w := range sortedWords {
		wordToID[w] = uint32(id)
	}

	fuzzyFSTFile, err := os.Create(fuzzyFSTPath)
	if err != nil {
		return Metadata{}, errs.NewBuildError("glue.Finalize", err)
	}
	fuzzySideFile, err := os.Create(fuzzySidePath)
	if err != nil {
		fuzzyFSTFile.Close()
		return Metadata{}, errs.NewBuildError("glue.Finalize", err)
	}
	err = fuzzyidx.Build(sortedWords, b.maxEditDistance, fuzzyFSTFile, fuzzySideFile)
	fstCloseErr := fuzzyFSTFile.Close()
	sideCloseErr := fuzzySideFile.Close()
	if err != nil {
		return Metadata{}, err
	}
	if fstCloseErr != nil || sideCloseErr != nil {
		return Metadata{}, errs.NewBuildError("glue.Finalize", firstNonNil(fstCloseErr, sideCloseErr))
	}
	log.Debugf("glue: finalized FuzzyIndex")

	phraseIDs := make([][]uint32, 0, len(b.phrases))
	for _, words := range b.phrases {
		ids := make([]uint32, len(words))
		for i, w := range words {
			id, ok := wordToID[w]
			if !ok {
				return Metadata{}, errs.NewBuildError("glue.Finalize", errs.ErrNotFound)
			}
			ids[i] = id
		}
		phraseIDs = append(phraseIDs, ids)
	}
	if err := phraseidx.BuildFromPhrases(phraseIDs, phrasePath); err != nil {
		return Metadata{}, err
	}
	log.Debugf("glue: finalized PhraseIndex (%d phrases)", len(phraseIDs))

	meta := Metadata{
		MaxEditDistance: b.maxEditDistance,
		WordCount:       len(sortedWords),
		PhraseCount:     len(phraseIDs),
		Version:         metadataVersion,
	}
	if err := writeMetadata(metadataPath, meta); err != nil {
		return Metadata{}, err
	}

	record := buildRecord{
		SourceFile:      b.sourceFile,
		MaxEditDistance: meta.MaxEditDistance,
		WordCount:       meta.WordCount,
		PhraseCount:     meta.PhraseCount,
	}
	if err := utils.WriteTOML(&record, buildTOMLPath); err != nil {
		return Metadata{}, errs.NewBuildError("glue.Finalize", err)
	}

	return meta, nil
}

func firstNonNil(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
