package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/dustin/go-humanize"
	"github.com/notepainter/notepainter"
	"github.com/notepainter/notepainter/canvas"
	"github.com/notepainter/notepainter/oto"
	"github.com/notepainter/notepainter/synth"
	"github.com/notepainter/notepainter/timeline"
	"github.com/notepainter/notepainter/version"
	"github.com/remeh/sizedwaitgroup"
)

// fileInfo is the data available to the -info template.
type fileInfo struct {
	Name     string
	Strokes  int
	Segments int
	Samples  int
	Duration time.Duration
	WavSize  int
	Levels   notepainter.Levels
	Params   synth.Params
}

var (
	inkColor      = color.NRGBA{R: 106, G: 27, B: 154, A: 255}
	whiteRowColor = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	blackRowColor = color.NRGBA{R: 228, G: 232, B: 236, A: 255}
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, everything is placed in the working directory.")
	play := flag.Bool("p", false, "Play the input drawings (default behaviour when no other output is defined).")
	rawOut := flag.Bool("r", false, "Output the rendered drawing as .raw file. By default, saves mono float32 buffer to disk.")
	wavOut := flag.Bool("w", false, "Output the rendered drawing as 16-bit .wav file.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting .raw.")
	pngOut := flag.Bool("png", false, "Output a .png preview of the drawing.")
	width := flag.Int("width", 1024, "Width of the .png preview.")
	height := flag.Int("height", 512, "Height of the .png preview.")
	info := flag.String("info", "", "Print the Go `template` for each drawing, with sprig functions. E.g. '{{.Name}}: {{.Duration}} {{.WavSize | bytes}}'")
	configFile := flag.String("config", "", "Read the synth configuration from `file` instead of the user config directory.")
	jobs := flag.Int("j", 4, "Number of drawings to process in parallel.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut && !*pngOut && *info == "" {
		*play = true // if the user gives nothing to output, then the default behaviour is just to play the file
	}
	cfg, err := timeline.ReadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	var tmpl *template.Template
	if *info != "" {
		tmpl, err = template.New("info").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
			"duration": notepainter.FormatDuration,
			"bytes":    notepainter.FormatBytes,
		}).Parse(*info)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not parse the info template: %v\n", err)
			os.Exit(1)
		}
	}
	var audioContext *oto.OtoContext
	if *play {
		audioContext, err = oto.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
		*jobs = 1 // one drawing plays at a time
	}
	var stdoutMu sync.Mutex
	process := func(filename string) error {
		output := func(extension string, contents []byte) error {
			dir := *directory
			if dir == "" {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("could not get working directory, specify the output directory explicitly: %w", err)
				}
			}
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %w", dir, err)
			}
			_, name := filepath.Split(filename)
			name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
			f := filepath.Join(dir, name)
			if err := os.WriteFile(f, contents, 0o644); err != nil {
				return fmt.Errorf("could not write file %v: %w", f, err)
			}
			return nil
		}
		drawing, err := timeline.ReadDrawingFile(filename)
		if err != nil {
			return err
		}
		model, err := timeline.NewModel(nil, nil, nil, cfg, "")
		if err != nil {
			return err
		}
		defer model.Close()
		model.History().Load(drawing)
		buffer := model.Render()
		if tmpl != nil {
			var b bytes.Buffer
			err := tmpl.Execute(&b, fileInfo{
				Name:     filename,
				Strokes:  model.History().Len(),
				Segments: model.History().SegmentCount(),
				Samples:  len(buffer),
				Duration: buffer.Duration(),
				WavSize:  notepainter.WavSize(len(buffer)),
				Levels:   buffer.Levels(),
				Params:   model.Params(),
			})
			if err != nil {
				return fmt.Errorf("could not execute the info template: %w", err)
			}
			stdoutMu.Lock()
			fmt.Println(b.String())
			stdoutMu.Unlock()
		}
		if *rawOut {
			raw, err := buffer.Raw(*pcm)
			if err != nil {
				return fmt.Errorf("could not generate .raw file: %w", err)
			}
			if err := output(".raw", raw); err != nil {
				return fmt.Errorf("error outputting .raw file: %w", err)
			}
		}
		if *wavOut {
			wav, err := buffer.WavBytes()
			if err != nil {
				return fmt.Errorf("could not generate .wav file: %w", err)
			}
			if err := output(".wav", wav); err != nil {
				return fmt.Errorf("error outputting .wav file: %w", err)
			}
		}
		if *pngOut {
			model.Resize(*width, *height)
			img := preview(model.Canvas(), model.Params())
			var b bytes.Buffer
			if err := png.Encode(&b, img); err != nil {
				return fmt.Errorf("could not encode .png file: %w", err)
			}
			if err := output(".png", b.Bytes()); err != nil {
				return fmt.Errorf("error outputting .png file: %w", err)
			}
		}
		if *play && len(buffer) > 0 {
			output := audioContext.Output().(*oto.OtoOutput)
			if err := output.Play(buffer.Source()); err != nil {
				return err
			}
			for output.IsPlaying() {
				time.Sleep(10 * time.Millisecond)
			}
		}
		return nil
	}
	var files []string
	retval := 0
	for _, param := range flag.Args() {
		if fi, err := os.Stat(param); err == nil && fi.IsDir() {
			ymlfiles, err := filepath.Glob(filepath.Join(param, "*.yml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for yml files: %v\n", param, err)
				retval = 1
				continue
			}
			files = append(files, ymlfiles...)
		} else {
			files = append(files, param)
		}
	}
	var retvalMu sync.Mutex
	swg := sizedwaitgroup.New(max(*jobs, 1))
	start := time.Now()
	for _, file := range files {
		swg.Add()
		go func(file string) {
			defer swg.Done()
			if err := process(file); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
				retvalMu.Lock()
				retval = 1
				retvalMu.Unlock()
			}
		}(file)
	}
	swg.Wait()
	if len(files) > 1 {
		fmt.Fprintf(os.Stderr, "processed %s drawings in %s\n", humanize.Comma(int64(len(files))), notepainter.FormatDuration(time.Since(start)))
	}
	if audioContext != nil {
		audioContext.Close()
	}
	os.Exit(retval)
}

// preview paints the pitch rows and the drawing into an image the size of
// the canvas.
func preview(c *canvas.Canvas, params synth.Params) *image.NRGBA {
	img := image.NewNRGBA(c.Bounds())
	canvas.DrawRows(img, params.Rows, func(row int) color.Color {
		if synth.IsBlackKey(params.RowNote(row)) {
			return blackRowColor
		}
		return whiteRowColor
	})
	c.Composite(img, img.Bounds(), inkColor)
	return img
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Note Painter command line utility for rendering .yml drawing files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
