// Command sketchctl converts a stroke file into extrusion specs from the command line.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"SketchBoard3D/internal/export"
	"SketchBoard3D/internal/extrude"
	snet "SketchBoard3D/internal/net"
	"SketchBoard3D/internal/service"
)

type options struct {
	in        string
	out       string
	server    string
	pdf       string
	png       string
	seed      uint64
	plain     bool
	recognize bool
	timeout   time.Duration
}

func main() {
	var o options
	flag.StringVar(&o.in, "in", "-", "input file: a stroke array or a request object (- for stdin)")
	flag.StringVar(&o.out, "out", "", "write the response JSON here (- for stdout)")
	flag.StringVar(&o.server, "server", "", "recognition service address; empty converts in-process")
	flag.StringVar(&o.pdf, "pdf", "", "also write a PDF drawing of the shapes")
	flag.StringVar(&o.png, "png", "", "also write a PNG preview of the shapes")
	flag.Uint64Var(&o.seed, "seed", 0, "height jitter seed for in-process conversion (0 = time based)")
	flag.BoolVar(&o.plain, "plain", false, "print the summary without colors")
	flag.BoolVar(&o.recognize, "recognize", false, "only classify strokes; writes a recognizedShapes request")
	flag.DurationVar(&o.timeout, "timeout", 15*time.Second, "request timeout")
	flag.Parse()
	if flag.NArg() > 0 {
		o.in = flag.Arg(0)
	}

	if err := run(context.Background(), o, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, o options, stdin io.Reader, stdout io.Writer) error {
	data, err := readInput(o.in, stdin)
	if err != nil {
		return err
	}
	req, err := parseRequest(data)
	if err != nil {
		return err
	}
	if o.recognize {
		return runRecognize(o, req, stdout)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := vectorize(ctx, o, req)
	if err != nil {
		return err
	}

	if o.out != "" {
		if err := writeJSON(o.out, resp, stdout); err != nil {
			return err
		}
	}
	if o.pdf != "" {
		if err := writeFile(o.pdf, func(w io.Writer) error { return export.PDF(w, resp.Shapes) }); err != nil {
			return err
		}
	}
	if o.png != "" {
		if err := writeFile(o.png, func(w io.Writer) error { return export.PNG(w, resp.Shapes, 1024, 768) }); err != nil {
			return err
		}
	}
	if o.out != "-" {
		fmt.Fprintln(stdout, specSummary(resp.Shapes, !o.plain))
	}
	return nil
}

// runRecognize classifies strokes without extrusion. The output is itself a valid request,
// so a reviewed or edited shape list can be fed back in.
func runRecognize(o options, req service.Request, stdout io.Writer) error {
	switch {
	case o.server != "":
		return errors.New("-recognize runs in-process only")
	case o.pdf != "" || o.png != "":
		return errors.New("-pdf and -png need extrusion specs; drop -recognize")
	case req.Strokes == nil:
		return errors.New("-recognize needs strokes in the input")
	}

	shapes := service.New(nil).Recognize(req.Strokes)
	if o.out != "" {
		out := service.Request{RecognizedShapes: shapes}
		if err := writeJSON(o.out, out, stdout); err != nil {
			return err
		}
	}
	if o.out != "-" {
		fmt.Fprintln(stdout, shapeSummary(shapes, !o.plain))
	}
	return nil
}

func vectorize(ctx context.Context, o options, req service.Request) (service.Response, error) {
	if o.server == "" {
		seed := o.seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return service.New(extrude.NewRand(seed)).Vectorize(req)
	}
	client, err := snet.NewClient(o.server)
	if err != nil {
		return service.Response{}, err
	}
	return client.Vectorize(ctx, req)
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

// parseRequest accepts a bare stroke array or a full request object.
func parseRequest(data []byte) (service.Request, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return service.Request{}, errors.New("empty input")
	}
	var req service.Request
	if data[0] == '[' {
		if err := json.Unmarshal(data, &req.Strokes); err != nil {
			return service.Request{}, fmt.Errorf("parse strokes: %w", err)
		}
		return req, nil
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return service.Request{}, fmt.Errorf("parse request: %w", err)
	}
	return req, nil
}

func writeJSON(name string, v any, stdout io.Writer) error {
	write := func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	if name == "-" {
		return write(stdout)
	}
	return writeFile(name, write)
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}
