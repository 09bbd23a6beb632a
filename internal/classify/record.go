package classify

import (
	"strconv"

	"pgnlens/internal/pgn"
)

// OutputTags lists the tags copied verbatim into every record, in column order.
var OutputTags = []string{
	pgn.TagEvent,
	pgn.TagSite,
	pgn.TagDate,
	pgn.TagWhite,
	pgn.TagBlack,
	pgn.TagResult,
	pgn.TagWhiteElo,
	pgn.TagBlackElo,
	pgn.TagTimeControl,
	pgn.TagECO,
	pgn.TagTermination,
	pgn.TagLink,
}

var derivedColumns = []string{
	"Filename",
	"Folder",
	"ColorPlayed",
	"RatingDiff",
	"MoveCount",
	"GameLength",
	"OpeningName",
	"LossQuality",
	"TerminationType",
}

// Columns returns the header row matching Record.Row.
func Columns() []string {
	out := make([]string, 0, len(derivedColumns)+len(OutputTags))
	out = append(out, derivedColumns...)
	return append(out, OutputTags...)
}

// Context carries what the classifiers need beyond the game itself.
type Context struct {
	// Username identifies the analysed player across the whole batch.
	Username string
	// Bucket is the provenance label of the record, e.g. win, loss or draw.
	Bucket string
	// Source identifies the record, normally its file name.
	Source string
	// LossBucket is the label that marks lost games; empty means DefaultLossBucket.
	LossBucket string
}

func (c Context) lossBucket() string {
	if c.LossBucket == "" {
		return DefaultLossBucket
	}
	return c.LossBucket
}

// Record is one enriched game, built once and not modified afterwards.
type Record struct {
	Source      string
	Bucket      string
	Color       Color
	RatingDiff  int
	MoveCount   int
	Length      LengthBucket
	Opening     string
	LossQuality LossQuality
	Termination Termination
	// Tags holds every OutputTags key; absent tags are "".
	Tags map[string]string
}

// Enrich classifies game using ResolveColor.
func Enrich(game pgn.Game, ctx Context) Record {
	return enrich(game, ctx, ResolveColor(game.Tags, ctx.Username))
}

// EnrichStrict is Enrich with ResolveColorStrict; it fails when ctx.Username
// plays neither side.
func EnrichStrict(game pgn.Game, ctx Context) (Record, error) {
	color, err := ResolveColorStrict(game.Tags, ctx.Username)
	if err != nil {
		return Record{}, err
	}
	return enrich(game, ctx, color), nil
}

func enrich(game pgn.Game, ctx Context, color Color) Record {
	moves := game.MoveCount
	if moves < 0 {
		moves = 0
	}
	selected := make(map[string]string, len(OutputTags))
	for _, key := range OutputTags {
		selected[key] = game.Tags.Get(key)
	}
	return Record{
		Source:      ctx.Source,
		Bucket:      ctx.Bucket,
		Color:       color,
		RatingDiff:  RatingDiff(game.Tags, color),
		MoveCount:   moves,
		Length:      GameLength(moves),
		Opening:     OpeningName(game.Tags.Get(pgn.TagECO)),
		LossQuality: LossQualityFor(ctx.Bucket, ctx.lossBucket(), moves),
		Termination: ClassifyTermination(game.Tags.Get(pgn.TagTermination)),
		Tags:        selected,
	}
}

// Row renders the record in Columns order.
func (r Record) Row() []string {
	row := make([]string, 0, len(derivedColumns)+len(OutputTags))
	row = append(row,
		r.Source,
		r.Bucket,
		string(r.Color),
		strconv.Itoa(r.RatingDiff),
		strconv.Itoa(r.MoveCount),
		string(r.Length),
		r.Opening,
		string(r.LossQuality),
		string(r.Termination),
	)
	for _, key := range OutputTags {
		row = append(row, r.Tags[key])
	}
	return row
}
