// Package email parses raw email payloads (plain or MIME) into a structured
// record: header metadata, assembled text body, attachment listing, a
// keyword-based intent/urgency analysis, and any embedded JSON block.
package email

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"regexp"
	"strings"
	"time"
)

// Metadata holds the message headers of interest.
type Metadata struct {
	Subject    string `json:"subject"`
	From       string `json:"from"`
	To         string `json:"to"`
	Date       string `json:"date"`
	MessageID  string `json:"message_id"`
	InReplyTo  string `json:"in_reply_to"`
	References string `json:"references"`
	Timestamp  string `json:"timestamp"`
}

// Attachment lists an attachment by name and declared type; content is not
// retained.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Content is the assembled body of the message.
type Content struct {
	Text        string       `json:"text"`
	HTML        bool         `json:"html"`
	Attachments []Attachment `json:"attachments"`
}

// Analysis summarizes the body's business intent and urgency.
type Analysis struct {
	Intent          string `json:"intent"`
	Urgency         string `json:"urgency"`
	HasEmbeddedJSON bool   `json:"has_embedded_json"`
}

// Record is the full extraction result for one email.
type Record struct {
	Metadata     Metadata       `json:"metadata"`
	Content      Content        `json:"content"`
	Analysis     Analysis       `json:"analysis"`
	EmbeddedJSON map[string]any `json:"embedded_json"`
}

// urgencyWords mark a message body as high urgency.
var urgencyWords = []string{"urgent", "asap", "emergency"}

// intentGroups are checked in order against the lowered body; the first
// group with a hit decides the intent.
var intentGroups = []struct {
	intent   string
	keywords []string
}{
	{"RFQ", []string{"request for quote", "rfq"}},
	{"Complaint", []string{"complaint", "dissatisfied"}},
	{"Invoice", []string{"invoice", "payment"}},
}

// defaultIntent is reported when no keyword group matches.
const defaultIntent = "General Inquiry"

// embeddedJSONRe finds the first single-line {...} span in a body.
var embeddedJSONRe = regexp.MustCompile(`\{.*\}`)

// Extract parses an email supplied as a unicode string.
func Extract(content string) *Record {
	return parse([]byte(content))
}

// ExtractRaw parses a byte-accurate email stream.
func ExtractRaw(content []byte) *Record {
	return parse(content)
}

func parse(raw []byte) *Record {
	record := &Record{
		Metadata: Metadata{Timestamp: time.Now().UTC().Format(time.RFC3339)},
		Content:  Content{Attachments: []Attachment{}},
	}

	msg, err := mail.ReadMessage(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil {
		// Headerless or malformed input degrades to a plain-text body;
		// extraction never halts on unparseable email.
		record.Content.Text = string(raw)
	} else {
		record.Metadata.Subject = msg.Header.Get("Subject")
		record.Metadata.From = msg.Header.Get("From")
		record.Metadata.To = msg.Header.Get("To")
		record.Metadata.Date = msg.Header.Get("Date")
		record.Metadata.MessageID = msg.Header.Get("Message-Id")
		record.Metadata.InReplyTo = msg.Header.Get("In-Reply-To")
		record.Metadata.References = msg.Header.Get("References")

		header := make(textproto.MIMEHeader, len(msg.Header))
		for k, v := range msg.Header {
			header[k] = v
		}
		walkPart(header, msg.Body, record)
	}

	analyze(record)
	return record
}

// walkPart dispatches one MIME part, recursing into multipart containers.
// text/plain parts are concatenated into the body, text/html parts are
// stripped to visible text, and any other part carrying a filename is
// recorded as an attachment.
func walkPart(header textproto.MIMEHeader, body io.Reader, record *Record) {
	mediaType, params, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil || mediaType == "" {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return
		}
		reader := multipart.NewReader(body, boundary)
		for {
			part, err := reader.NextPart()
			if err != nil {
				return
			}
			walkPart(part.Header, part, record)
		}
	}

	switch {
	case mediaType == "text/plain":
		record.Content.Text += decodeBody(header, body)
	case mediaType == "text/html":
		record.Content.HTML = true
		record.Content.Text += StripHTML(decodeBody(header, body))
	case partFilename(header) != "":
		record.Content.Attachments = append(record.Content.Attachments, Attachment{
			Filename:    partFilename(header),
			ContentType: mediaType,
		})
	}
}

// decodeBody reads a part body, applying its transfer encoding.
func decodeBody(header textproto.MIMEHeader, body io.Reader) string {
	switch strings.ToLower(strings.TrimSpace(header.Get("Content-Transfer-Encoding"))) {
	case "base64":
		body = base64.NewDecoder(base64.StdEncoding, body)
	case "quoted-printable":
		body = quotedprintable.NewReader(body)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	return string(data)
}

// partFilename resolves a part's filename from its Content-Disposition, or
// the legacy name parameter on Content-Type.
func partFilename(header textproto.MIMEHeader) string {
	if _, params, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil {
		if filename := params["filename"]; filename != "" {
			return filename
		}
	}
	if _, params, err := mime.ParseMediaType(header.Get("Content-Type")); err == nil {
		return params["name"]
	}
	return ""
}

// analyze fills in urgency, intent, and the embedded-JSON scan once the body
// has been assembled.
func analyze(record *Record) {
	lowered := strings.ToLower(record.Content.Text)

	record.Analysis.Urgency = "Normal"
	for _, word := range urgencyWords {
		if strings.Contains(lowered, word) {
			record.Analysis.Urgency = "High"
			break
		}
	}

	record.Analysis.Intent = defaultIntent
	for _, group := range intentGroups {
		matched := false
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				matched = true
				break
			}
		}
		if matched {
			record.Analysis.Intent = group.intent
			break
		}
	}

	record.EmbeddedJSON = extractEmbeddedJSON(record.Content.Text)
	record.Analysis.HasEmbeddedJSON = record.EmbeddedJSON != nil
}

// extractEmbeddedJSON scans the body for the first {...} span and attempts
// to parse it. A parse failure yields nil without failing the extraction.
func extractEmbeddedJSON(text string) map[string]any {
	span := embeddedJSONRe.FindString(text)
	if span == "" {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil
	}
	return payload
}
