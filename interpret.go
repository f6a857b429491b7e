package wlsrest

import "net/http"

// Interpret turns a response into the value returned to callers.
//
//   - status >= 400: the classified error.
//   - GET: the decoded body verbatim, never wrapped.
//   - empty body: nil.
//   - a document with a "self" or "job" link and a "name": an *Object.
//   - anything else: the decoded body verbatim.
func Interpret(session Session, method string, status int, body []byte) (any, error) {
	if status >= http.StatusBadRequest {
		return nil, Classify(status, body)
	}

	decoded, err := decodeBody(body)
	if err != nil {
		return nil, &DecodeError{StatusCode: status, Err: err}
	}

	if method == http.MethodGet {
		return decoded, nil
	}

	if isEmpty(decoded) {
		return nil, nil
	}

	doc, ok := decoded.(*Document)
	if !ok {
		return decoded, nil
	}

	href, ok := selfOrJobLink(doc)
	if !ok {
		return doc, nil
	}
	name, ok := doc.Name()
	if !ok {
		return doc, nil
	}
	return NewObject(session, name, href), nil
}

// selfOrJobLink scans links leniently: a malformed entry means the document
// is not self-describing, not that the response is broken.
func selfOrJobLink(doc *Document) (string, bool) {
	v, ok := doc.Lookup("links")
	if !ok {
		return "", false
	}
	list, ok := v.([]any)
	if !ok {
		return "", false
	}
	for _, raw := range list {
		m, ok := raw.(map[string]any)
		if !ok {
			return "", false
		}
		rel, _ := m["rel"].(string)
		if rel != "self" && rel != "job" {
			continue
		}
		href, ok := m["href"].(string)
		return href, ok
	}
	return "", false
}
