package events

import "github.com/samdwyer/mun/internal/logging"

type ClientTracer struct{}

var Client = ClientTracer{}

func (ClientTracer) Request(op, method, url, requestID string) {
	logging.Trace("client.request", map[string]interface{}{
		"op":        op,
		"method":    method,
		"url":       url,
		"requestID": requestID,
	})
}

func (ClientTracer) Retry(op, requestID string, err error) {
	logging.Trace("client.retry", map[string]interface{}{"op": op, "requestID": requestID, "error": errString(err)})
}

func (ClientTracer) Response(op string, status, attempts int) {
	logging.Trace("client.response", map[string]interface{}{"op": op, "status": status, "attempts": attempts})
}

func (ClientTracer) Failure(op string, err error) {
	logging.Trace("client.failure", map[string]interface{}{"op": op, "error": errString(err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
