package restyutil

import (
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type Output interface {
	Write(id string, contents string)
}

type dumpCtx struct {
	output    Output
	idcounter *uint64
}

// DumpExchanges writes every request/response pair the client sees to
// output, one file per exchange. `output` can be nil, in which case the
// function is a no-op. Span instrumentation lives in lib/telemetry; this
// only captures raw traffic for debugging scrapers against live sites.
func DumpExchanges(client *resty.Client, output Output) {
	if output == nil {
		return
	}

	var idcounter uint64
	d := dumpCtx{output: output, idcounter: &idcounter}
	client.OnAfterResponse(d.onAfterResponse)
	client.OnError(d.onError)
}

func (d dumpCtx) nextId() string {
	return strconv.FormatUint(atomic.AddUint64(d.idcounter, 1), 10)
}

func (d dumpCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	id := d.nextId()
	d.output.Write(id, formatHttpMessage(res))
	slog.DebugContext(
		res.Request.Context(), "request exchange dumped",
		"method", res.Request.Method,
		"url", res.Request.URL,
		"message_id", id,
	)
	return nil
}

func (d dumpCtx) onError(req *resty.Request, err error) {
	slog.ErrorContext(
		req.Context(), "request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
	)
}
