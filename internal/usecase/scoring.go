package usecase

import "github.com/xavierca1/mailmorph/internal/entity"

// ScoreLabel applies the temperature rules in priority order:
// replied -> Hot, contacted -> Warm, any open or click -> Warm, otherwise Cold.
func ScoreLabel(lead entity.Lead) entity.Label {
	switch {
	case lead.Replied:
		return entity.LabelHot
	case lead.Status == entity.LeadStatusContacted:
		return entity.LabelWarm
	case lead.Opened >= 1 || lead.Clicked >= 1:
		return entity.LabelWarm
	default:
		return entity.LabelCold
	}
}
