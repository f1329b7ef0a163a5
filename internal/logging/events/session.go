package events

import "github.com/samdwyer/mun/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Connect(guid string, entities int) {
	logging.Trace("session.connect", map[string]interface{}{"guid": guid, "entities": entities})
}

func (SessionTracer) Disconnect() {
	logging.Trace("session.disconnect", nil)
}

func (SessionTracer) Room(command string, entities int) {
	logging.Trace("session.room", map[string]interface{}{"command": command, "entities": entities})
}

func (SessionTracer) Target(command string, key int, guid string) {
	logging.Trace("session.target", map[string]interface{}{"command": command, "key": key, "guid": guid})
}

func (SessionTracer) UnknownKey(command string, key int) {
	logging.Trace("session.target.unknown", map[string]interface{}{"command": command, "key": key})
}

func (SessionTracer) Error(command string, err error) {
	logging.Trace("session.error", map[string]interface{}{"command": command, "error": errString(err)})
}

func (SessionTracer) ClearInfo() {
	logging.Trace("session.clear_info", nil)
}
