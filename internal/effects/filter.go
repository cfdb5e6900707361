package effects

import (
	"fmt"

	"github.com/ivlev/hypereel/internal/config"
	"github.com/ivlev/hypereel/internal/system"
)

// Filter строит цепочку -vf для сегмента. Кадры приходят уже готовыми,
// так что фильтр только приводит формат и при отладке подписывает кадры.
type Filter interface {
	GenerateFilter(params config.SegmentParams) string
}

type SegmentFilter struct{}

func (SegmentFilter) GenerateFilter(p config.SegmentParams) string {
	chain := fmt.Sprintf("scale=%d:%d,format=yuv420p", p.Width, p.Height)
	if p.Debug && system.CheckFilterSupport("drawtext") {
		// Номер кадра ролика, а не сегмента.
		text := fmt.Sprintf("drawtext=text='seg %d | frame %%{eif\\:n+%d\\:d}':x=10:y=10:fontsize=24:fontcolor=yellow:box=1:boxcolor=black@0.5",
			p.Index+1, p.From)
		chain += "," + text
	}
	return chain
}
