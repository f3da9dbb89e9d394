package eaf

import (
	"github.com/czcorpus/eafkit/core/xml"
)

// Document is an immutable snapshot of one transcription file: the
// orthographic and phonetic annotation sequences, the time-slot sequence,
// and lazily built keyed indices over them.
//
// All sequences are extracted once at load time. The index accessors
// memoize on first call; each differently-keyed index has its own cache
// field, so requesting PhoneticByID and PhoneticByOrthographicRef on the
// same document yields two independent lookups. Lazy initialization is
// not synchronized — build the indices from one goroutine, after which
// concurrent reads of the fully-memoized document are safe.
type Document struct {
	// Orthographic holds the orthographic-tier annotations in encounter order.
	Orthographic []Annotation
	// Phonetic holds the phonetic-tier annotations in encounter order.
	Phonetic []Annotation
	// TimeSlots holds every time slot in document order.
	TimeSlots []TimeSlot
	// MediaURLs lists the MEDIA_URL of each MEDIA_DESCRIPTOR in the
	// document header, when present.
	MediaURLs []string

	ortByID  map[string]Annotation
	fonByID  map[string]Annotation
	fonByRef map[string]Annotation
	slotByID map[string]TimeSlot
}

// Load parses raw .eaf data and constructs a Document from it.
func Load(data []byte) (*Document, error) {
	tree, err := xml.Parse(data)
	if err != nil {
		return nil, err
	}
	return LoadTree(tree)
}

// LoadTree constructs a Document from an already-parsed annotation tree.
// Extraction runs once, here; a failed extraction yields no partial
// document.
func LoadTree(tree *xml.Document) (*Document, error) {
	ort, err := ExtractAnnotations(tree, RoleOrthographic)
	if err != nil {
		return nil, err
	}
	fon, err := ExtractAnnotations(tree, RolePhonetic)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Orthographic: ort,
		Phonetic:     fon,
		TimeSlots:    ExtractTimeSlots(tree),
	}
	descriptors, err := tree.XPath("//HEADER/MEDIA_DESCRIPTOR")
	if err == nil {
		for _, d := range descriptors {
			if url := d.Attr("MEDIA_URL"); url != "" {
				doc.MediaURLs = append(doc.MediaURLs, url)
			}
		}
	}
	return doc, nil
}

// OrthographicByID returns the orthographic annotations keyed by
// ANNOTATION_ID, built on first call and cached.
func (d *Document) OrthographicByID() map[string]Annotation {
	if d.ortByID == nil {
		d.ortByID = IndexBy(d.Orthographic, ByID)
	}
	return d.ortByID
}

// PhoneticByID returns the phonetic annotations keyed by ANNOTATION_ID,
// built on first call and cached.
func (d *Document) PhoneticByID() map[string]Annotation {
	if d.fonByID == nil {
		d.fonByID = IndexBy(d.Phonetic, ByID)
	}
	return d.fonByID
}

// PhoneticByOrthographicRef returns the phonetic annotations keyed by
// their ANNOTATION_REF, i.e. by the orthographic annotation they are
// anchored to. Cached independently of PhoneticByID: the two indices key
// the same records by different attributes and must never share a cache
// slot. Duplicate refs collapse last-write-wins, see IndexBy.
func (d *Document) PhoneticByOrthographicRef() map[string]Annotation {
	if d.fonByRef == nil {
		d.fonByRef = IndexBy(d.Phonetic, ByRef)
	}
	return d.fonByRef
}

// TimeSlotsByID returns the time slots keyed by TIME_SLOT_ID, built on
// first call and cached. Duplicate slot ids collapse last-write-wins.
func (d *Document) TimeSlotsByID() map[string]TimeSlot {
	if d.slotByID == nil {
		d.slotByID = IndexBy(d.TimeSlots, BySlotID)
	}
	return d.slotByID
}
