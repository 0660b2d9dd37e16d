package tickerapp

import (
	"fyne.io/fyne/v2"

	"github.com/edward-ap/miniticker/images"
)

// AppIcon is the icon used for the app and window; nil if the embed is empty.
var AppIcon fyne.Resource

func init() {
	if len(images.TickerSVG) > 0 {
		AppIcon = fyne.NewStaticResource("ticker.svg", images.TickerSVG)
	}
}
