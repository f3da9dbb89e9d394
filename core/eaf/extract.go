package eaf

import (
	"fmt"
	"strings"

	"github.com/czcorpus/eafkit/core/xml"
)

// tierAnnotator is the ANNOTATOR value of tiers added by the TransVer
// post-processing tool; such tiers duplicate the primary transcription and
// are never extracted.
const transVerAnnotator = "TransVer"

// selectTier applies the corpus' tier selection rule: a tier qualifies for
// role r iff its LINGUISTIC_TYPE_REF equals r, it was not added by
// TransVer, and its TIER_ID carries neither the "JO" nor the "anom"
// prefix (annotator scratch and anonymization tiers).
func selectTier(tier *xml.Node, role Role) (bool, error) {
	if !tier.HasAttr("LINGUISTIC_TYPE_REF") {
		return false, fmt.Errorf("%w: LINGUISTIC_TYPE_REF on TIER", ErrMissingAttribute)
	}
	if Role(tier.Attr("LINGUISTIC_TYPE_REF")) != role {
		return false, nil
	}
	if tier.Attr("ANNOTATOR") == transVerAnnotator {
		return false, nil
	}
	if !tier.HasAttr("TIER_ID") {
		return false, fmt.Errorf("%w: TIER_ID on TIER", ErrMissingAttribute)
	}
	tierID := tier.Attr("TIER_ID")
	if strings.HasPrefix(tierID, "JO") || strings.HasPrefix(tierID, "anom") {
		return false, nil
	}
	return true, nil
}

// ExtractAnnotations walks all TIER elements of the document in document
// order, filters them by the tier selection rule for role, and returns the
// annotation spans of every qualifying tier, in encounter order (tier
// order first, span order within each tier). Each record carries the
// span's full attribute set plus the derived speaker id.
//
// A span without a value child, or whose value child has no text, fails
// the whole extraction with ErrMalformedAnnotation: no partial sequence is
// returned.
func ExtractAnnotations(doc *xml.Document, role Role) ([]Annotation, error) {
	spanTag := role.SpanTag()
	var annots []Annotation
	for _, tier := range doc.Iter("TIER") {
		ok, err := selectTier(tier, role)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		tierID := tier.Attr("TIER_ID")
		fields := strings.Fields(tierID)
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: TIER_ID on TIER is blank", ErrMissingAttribute)
		}
		speaker := fields[0]

		for _, span := range tier.Iter(spanTag) {
			if !span.HasAttr("ANNOTATION_ID") {
				return nil, fmt.Errorf("%w: ANNOTATION_ID on %s in tier %q",
					ErrMissingAttribute, spanTag, tierID)
			}
			value, err := spanValue(span)
			if err != nil {
				return nil, fmt.Errorf("tier %q, annotation %q: %w",
					tierID, span.Attr("ANNOTATION_ID"), err)
			}
			annots = append(annots, Annotation{
				ID:           span.Attr("ANNOTATION_ID"),
				Ref:          span.Attr("ANNOTATION_REF"),
				TimeSlotRef1: span.Attr("TIME_SLOT_REF1"),
				TimeSlotRef2: span.Attr("TIME_SLOT_REF2"),
				Value:        value,
				Speaker:      speaker,
				Attrs:        span.Attributes(),
			})
		}
	}
	return annots, nil
}

// ExtractValues is ExtractAnnotations reduced to the plain text payloads:
// one string per annotation span, same tier filtering, same encounter
// order.
func ExtractValues(doc *xml.Document, role Role) ([]string, error) {
	annots, err := ExtractAnnotations(doc, role)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(annots))
	for i, a := range annots {
		values[i] = a.Value
	}
	return values, nil
}

// spanValue reads the text content of the span's first child element
// (ANNOTATION_VALUE in well-formed files).
func spanValue(span *xml.Node) (string, error) {
	child := span.FirstChildElement()
	if child == nil {
		return "", fmt.Errorf("%w: no value child", ErrMalformedAnnotation)
	}
	value := child.Text()
	if value == "" {
		return "", fmt.Errorf("%w: value child has no text", ErrMalformedAnnotation)
	}
	return value, nil
}

// ExtractTimeSlots returns every TIME_SLOT element of the document in
// document order, with the full attribute set of each preserved opaquely.
// No filtering is applied.
func ExtractTimeSlots(doc *xml.Document) []TimeSlot {
	var slots []TimeSlot
	for _, node := range doc.Iter("TIME_SLOT") {
		slots = append(slots, TimeSlot{
			ID:    node.Attr("TIME_SLOT_ID"),
			Value: node.Attr("TIME_VALUE"),
			Attrs: node.Attributes(),
		})
	}
	return slots
}
