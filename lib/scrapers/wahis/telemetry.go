package wahis

import (
	"wahis-scraper/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("wahis.lib.scrapers.wahis")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput enables request/response transcript dumps
// for clients created afterwards.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
