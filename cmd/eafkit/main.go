// Command eafkit works with the .eaf transcription files of the ORTOFON
// spoken corpus: it extracts annotation tiers, prepares ASR-ready
// transcripts, and exports whole directories into a SQLite corpus
// database.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/czcorpus/eafkit/core/eaf"
	"github.com/czcorpus/eafkit/core/norm"
	"github.com/czcorpus/eafkit/internal/discover"
	"github.com/czcorpus/eafkit/internal/logging"
	"github.com/czcorpus/eafkit/internal/store"
)

const version = "0.2.0"

// CLI defines the command-line interface for eafkit.
var CLI struct {
	// Global flags
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogJSON  bool   `name:"log-json" help:"Emit logs as JSON"`

	List     ListCmd     `cmd:"" help:"List annotation files under a directory"`
	Extract  ExtractCmd  `cmd:"" help:"Extract annotations from one transcription file"`
	Tokenize TokenizeCmd `cmd:"" help:"Emit ASR-ready transcript lines from orthographic tiers"`
	Phones   PhonesCmd   `cmd:"" help:"Emit phone-segmented phonetic transcriptions"`
	Export   ExportCmd   `cmd:"" help:"Export a directory of transcriptions into a SQLite corpus database"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// roleFromName maps the CLI layer names to tier roles.
func roleFromName(name string) eaf.Role {
	if name == "fon" {
		return eaf.RolePhonetic
	}
	return eaf.RoleOrthographic
}

// loadDocument reads and extracts one transcription file.
func loadDocument(path string) (*eaf.Document, []byte, error) {
	data, err := discover.Open(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := eaf.Load(data)
	if err != nil {
		logging.ExtractionError(path, err)
		return nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}
	logging.DocumentLoaded(path, len(doc.Orthographic), len(doc.Phonetic), len(doc.TimeSlots))
	return doc, data, nil
}

// ListCmd lists discovered annotation files.
type ListCmd struct {
	Dir string `arg:"" help:"Directory to search" type:"existingdir"`
}

func (c *ListCmd) Run() error {
	files, err := discover.FindAnnotationFiles(c.Dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

// ExtractCmd prints extracted annotations from one file.
type ExtractCmd struct {
	Path   string `arg:"" help:"Transcription file (.eaf or .eaf.xz)" type:"existingfile"`
	Layer  string `default:"ort" enum:"ort,fon" help:"Annotation layer (ort or fon)"`
	Values bool   `help:"Print plain annotation values instead of TSV records"`
}

func (c *ExtractCmd) Run() error {
	doc, _, err := loadDocument(c.Path)
	if err != nil {
		return err
	}
	annots := doc.Orthographic
	if roleFromName(c.Layer) == eaf.RolePhonetic {
		annots = doc.Phonetic
	}
	if c.Values {
		for _, a := range annots {
			fmt.Println(a.Value)
		}
		return nil
	}
	fmt.Println("ANNOTATION_ID\tANNOTATION_REF\tTIME_SLOT_REF1\tTIME_SLOT_REF2\tSPEAKER\tVALUE")
	for _, a := range annots {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Ref, a.TimeSlotRef1, a.TimeSlotRef2, a.Speaker, a.Value)
	}
	return nil
}

// TokenizeCmd emits ASR transcript lines, one per orthographic annotation.
type TokenizeCmd struct {
	Path string `arg:"" help:"Transcription file (.eaf or .eaf.xz)" type:"existingfile"`
}

func (c *TokenizeCmd) Run() error {
	doc, _, err := loadDocument(c.Path)
	if err != nil {
		return err
	}
	for _, a := range doc.Orthographic {
		line := transcriptLine(a, norm.TokenizeForASR(a.Value))
		if line != "" {
			fmt.Println(line)
		}
	}
	return nil
}

// transcriptLine formats one annotation as a Kaldi-style transcript line:
// utterance id (speaker plus annotation id) followed by the tokens.
// Returns "" when tokenization left nothing.
func transcriptLine(a eaf.Annotation, tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return fmt.Sprintf("%s-%s %s", a.Speaker, a.ID, strings.Join(tokens, " "))
}

// PhonesCmd emits phone-segmented lines, one per phonetic annotation.
type PhonesCmd struct {
	Path string `arg:"" help:"Transcription file (.eaf or .eaf.xz)" type:"existingfile"`
}

func (c *PhonesCmd) Run() error {
	doc, _, err := loadDocument(c.Path)
	if err != nil {
		return err
	}
	for _, a := range doc.Phonetic {
		fmt.Println(segmentWords(a.Value))
	}
	return nil
}

// segmentWords phone-segments each whitespace-delimited word of a
// phonetic annotation and rejoins them on single spaces.
func segmentWords(value string) string {
	words := strings.Fields(value)
	for i, w := range words {
		words[i] = norm.SplitPhones(w)
	}
	return strings.Join(words, " ")
}

// ExportCmd exports a directory of transcriptions into a corpus database.
type ExportCmd struct {
	Dir    string `arg:"" help:"Directory to search for annotation files" type:"existingdir"`
	Out    string `required:"" help:"Output SQLite database path" type:"path"`
	Strict bool   `help:"Fail on duplicate annotation or time-slot ids instead of overwriting"`
}

func (c *ExportCmd) Run() error {
	files, err := discover.FindAnnotationFiles(c.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no annotation files under %s", c.Dir)
	}

	db, err := store.Open(c.Out)
	if err != nil {
		return err
	}
	defer db.Close()
	db.Strict = c.Strict

	runID, err := db.BeginRun()
	if err != nil {
		return err
	}

	start := time.Now()
	saved := 0
	for _, path := range files {
		doc, raw, err := loadDocument(path)
		if err != nil {
			return err
		}
		if err := db.SaveDocument(runID, path, raw, doc); err != nil {
			return err
		}
		saved++
	}
	if err := db.FinishRun(runID, saved); err != nil {
		return err
	}
	logging.ExportRun(runID, saved, time.Since(start), "out", c.Out)
	fmt.Printf("Exported %d file(s) to %s (run %s)\n", saved, c.Out, runID)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("eafkit version %s (sqlite driver: %s)\n", version, store.DriverType())
	return nil
}

func logLevel(name string) logging.Level {
	switch name {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("eafkit"),
		kong.Description("ORTOFON .eaf transcription extraction and ASR transcript preparation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	format := logging.FormatText
	if CLI.LogJSON {
		format = logging.FormatJSON
	}
	logging.InitLogger(logLevel(CLI.LogLevel), format)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
