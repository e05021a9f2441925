package transport

import "encoding/json"

// Envelope is the backend's response wrapper. Some endpoints return the
// payload bare; DecodeEnvelope tolerates both shapes.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []string        `json:"errors,omitempty"`
	Token   string          `json:"token,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
}

// envelopeProbe mirrors Envelope with a pointer success flag so a bare
// payload (no "success" key) can be told apart from success=false.
type envelopeProbe struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
}

// DecodeEnvelope parses a response body. Bodies that are not envelopes are
// wrapped as successful envelopes carrying the raw payload, matching how
// the backend's older endpoints respond.
func DecodeEnvelope(body []byte, statusOK bool) *Envelope {
	if len(body) == 0 {
		return &Envelope{Success: statusOK}
	}
	var probe envelopeProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		// Not JSON at all. Treat as bare data.
		return &Envelope{Success: statusOK, Data: body}
	}
	if probe.Success == nil && probe.Message == "" && len(probe.Errors) == 0 && probe.Token == "" {
		return &Envelope{Success: statusOK, Data: body}
	}
	env := &Envelope{
		Data:    probe.Data,
		Message: probe.Message,
		Errors:  probe.Errors,
		Token:   probe.Token,
		User:    probe.User,
	}
	if probe.Success != nil {
		env.Success = *probe.Success
	} else {
		env.Success = statusOK
	}
	return env
}

// DecodeData unmarshals the envelope's data payload into out. An envelope
// without a data field falls back to the raw body semantics handled above.
func (e *Envelope) DecodeData(out any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}
