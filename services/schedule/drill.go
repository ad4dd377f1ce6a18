package schedule

import (
	"context"
	"fmt"
	"time"

	commitmentRepo "skischool/database/repository/commitment"
	"skischool/models"
	"skischool/utils"

	"go.uber.org/zap"
)

// Drill carves the gap [gapStart, gapEnd] on targetDate out of block and
// returns the replacement set. Days before and after the target keep the
// original time range; the target day is shrunk or split. Replacements keep
// subtype, description and color, carry no id, and any time-shrunk block
// loses its full-day flag. An empty result means the block disappears.
func Drill(block models.NwdBlock, targetDate, gapStart, gapEnd string, hours Hours) ([]models.NwdBlock, error) {
	target, err := utils.ParseDate(targetDate)
	if err != nil {
		return nil, newMalformedTimeError("target_date", targetDate, err)
	}
	gapFrom, err := utils.ParseClock(gapStart)
	if err != nil {
		return nil, newMalformedTimeError("gap_start", gapStart, err)
	}
	gapTo, err := utils.ParseClock(gapEnd)
	if err != nil {
		return nil, newMalformedTimeError("gap_end", gapEnd, err)
	}
	if gapTo <= gapFrom {
		return nil, ErrInvalidInterval
	}

	first, err := utils.ParseDate(block.StartDate)
	if err != nil {
		return nil, newMalformedTimeError("start_date", block.StartDate, err)
	}
	last := first
	if block.EndDate != "" {
		if last, err = utils.ParseDate(block.EndDate); err != nil {
			return nil, newMalformedTimeError("end_date", block.EndDate, err)
		}
	}
	if target.Before(first) || target.After(last) {
		return nil, ErrDateOutsideBlock
	}

	var out []models.NwdBlock
	if target.After(first) {
		before := derive(block)
		before.StartDate = first.Format(utils.DateLayout)
		before.EndDate = target.AddDate(0, 0, -1).Format(utils.DateLayout)
		out = append(out, before)
	}

	day := derive(block)
	day.StartDate = target.Format(utils.DateLayout)
	day.EndDate = day.StartDate
	carved, err := drillDay(day, gapFrom, gapTo, Normalizer{Hours: hours})
	if err != nil {
		return nil, err
	}
	out = append(out, carved...)

	if target.Before(last) {
		after := derive(block)
		after.StartDate = target.AddDate(0, 0, 1).Format(utils.DateLayout)
		after.EndDate = last.Format(utils.DateLayout)
		out = append(out, after)
	}
	return out, nil
}

// drillDay handles the single-day cases.
func drillDay(day models.NwdBlock, gapFrom, gapTo time.Duration, n Normalizer) ([]models.NwdBlock, error) {
	from, to, err := n.blockClock(day)
	if err != nil {
		return nil, err
	}

	switch {
	case gapTo <= from || gapFrom >= to:
		// gap misses the block
		return []models.NwdBlock{day}, nil
	case gapFrom <= from && gapTo >= to:
		return nil, nil
	case gapFrom <= from:
		return []models.NwdBlock{shrink(day, gapTo, to)}, nil
	case gapTo >= to:
		return []models.NwdBlock{shrink(day, from, gapFrom)}, nil
	default:
		return []models.NwdBlock{shrink(day, from, gapFrom), shrink(day, gapTo, to)}, nil
	}
}

func derive(block models.NwdBlock) models.NwdBlock {
	b := block
	b.ID = ""
	b.CreatedAt = time.Time{}
	return b
}

func shrink(b models.NwdBlock, from, to time.Duration) models.NwdBlock {
	b.FullDay = false
	b.StartTime = utils.FormatClock(from)
	b.EndTime = utils.FormatClock(to)
	return b
}

// Driller loads, drills and persists nwd blocks.
type Driller struct {
	Repo   commitmentRepo.CommitmentRepository
	Hours  Hours
	Logger *zap.Logger
}

// DrillAndPersist replaces the stored block with its drilled replacements.
func (d *Driller) DrillAndPersist(ctx context.Context, blockID, targetDate, gapStart, gapEnd string, scope *models.School) ([]models.NwdBlock, error) {
	block, err := d.Repo.FetchNwdBlockByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	hours, err := HoursFor(scope, d.Hours)
	if err != nil {
		return nil, err
	}

	replacements, err := Drill(*block, targetDate, gapStart, gapEnd, hours)
	if err != nil {
		return nil, err
	}
	if err := d.Repo.PersistNwdReplace(ctx, block.ID, replacements); err != nil {
		return nil, fmt.Errorf("persist drilled nwd block %s: %w", block.ID, err)
	}

	logger := d.Logger
	if logger == nil {
		logger = utils.GetLogger()
	}
	logger.Info("nwd block drilled",
		zap.String("blockID", block.ID),
		zap.String("date", targetDate),
		zap.Int("replacements", len(replacements)))
	return replacements, nil
}
