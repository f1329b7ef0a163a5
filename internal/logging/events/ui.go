package events

import "github.com/samdwyer/mun/internal/logging"

type PopupTracer struct{}

type RunnerTracer struct{}

var (
	Popup  = PopupTracer{}
	Runner = RunnerTracer{}
)

func (PopupTracer) Transition(from, to, title string) {
	logging.Trace("popup.transition", map[string]interface{}{"from": from, "to": to, "title": title})
}

func (PopupTracer) Cursor(mode string, cursor int) {
	logging.Trace("popup.cursor", map[string]interface{}{"mode": mode, "cursor": cursor})
}

func (PopupTracer) Select(mode string, key int) {
	logging.Trace("popup.select", map[string]interface{}{"mode": mode, "key": key})
}

func (RunnerTracer) Start(baseURL string, tickMillis int64) {
	logging.Trace("runner.start", map[string]interface{}{"url": baseURL, "tickMs": tickMillis})
}

func (RunnerTracer) Input(key string, popupActive bool) {
	logging.Trace("runner.input", map[string]interface{}{"key": key, "popup": popupActive})
}

func (RunnerTracer) Quit() {
	logging.Trace("runner.quit", nil)
}
