package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrianliechti/narrator/pkg/client"
	"github.com/adrianliechti/narrator/pkg/player"
	"github.com/adrianliechti/narrator/pkg/voice"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")
	langFlag := flag.String("lang", "", "language of error messages (en, zh)")
	fileFlag := flag.String("file", "", "document to read aloud")

	flag.Parse()

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	if *langFlag != "" {
		options = append(options, client.WithLanguage(*langFlag))
	}

	c := client.New(*urlFlag, options...)

	session, err := c.Sessions.New(ctx)

	if err != nil {
		panic(err)
	}

	defer c.Sessions.Delete(ctx, session.ID)

	reader := bufio.NewReader(os.Stdin)
	output := os.Stdout

	session = upload(ctx, c, session, reader, *fileFlag)
	session = edit(ctx, c, session, reader)
	session = configure(ctx, c, session, reader)

	output.WriteString("Generating audio...\n")

	synthesis, err := c.Sessions.Synthesize(ctx, session.ID)

	if err != nil {
		fail(err)
	}

	play(ctx, synthesis, reader)
}

func upload(ctx context.Context, c *client.Client, session *client.Session, reader *bufio.Reader, path string) *client.Session {
	output := os.Stdout

	for {
		if path == "" {
			output.WriteString("Document path (PDF, TXT, Markdown), empty to paste text\n")
			path = prompt(reader)
		}

		var result *client.Session
		var err error

		if path == "" {
			output.WriteString("Paste text, finish with a single '.' line\n")
			result, err = c.Sessions.Text(ctx, session.ID, readBlock(reader))
		} else {
			result, err = uploadFile(ctx, c, session.ID, path)
		}

		if err == nil {
			return result
		}

		output.WriteString(err.Error() + "\n\n")
		path = ""
	}
}

func uploadFile(ctx context.Context, c *client.Client, id, path string) (*client.Session, error) {
	f, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	return c.Sessions.Upload(ctx, id, client.DocumentRequest{
		Name:   filepath.Base(path),
		Reader: f,
	})
}

func edit(ctx context.Context, c *client.Client, session *client.Session, reader *bufio.Reader) *client.Session {
	output := os.Stdout

	for {
		stats, _ := c.Segments.Count(ctx, session.Text)

		output.WriteString("\n" + session.Text + "\n\n")

		if stats != nil {
			output.WriteString(fmt.Sprintf("%d characters, %d words\n", stats.Characters, stats.Words))
		}

		output.WriteString("/next to continue, /format to tidy whitespace, /paste to replace the text\n")

		var result *client.Session
		var err error

		switch strings.ToLower(prompt(reader)) {
		case "/next", "":
			result, err = c.Sessions.Confirm(ctx, session.ID)

			if err == nil {
				return result
			}

		case "/format":
			var text string

			if text, _, err = c.Segments.Format(ctx, session.Text); err == nil {
				result, err = c.Sessions.Text(ctx, session.ID, text)
			}

		case "/paste":
			output.WriteString("Paste text, finish with a single '.' line\n")
			result, err = c.Sessions.Text(ctx, session.ID, readBlock(reader))

		default:
			output.WriteString("Unknown command\n")
		}

		if err != nil {
			output.WriteString(err.Error() + "\n")
			continue
		}

		if result != nil {
			session = result
		}
	}
}

func configure(ctx context.Context, c *client.Client, session *client.Session, reader *bufio.Reader) *client.Session {
	output := os.Stdout

	voices, err := c.Sessions.Voices(ctx, session.ID)

	if err != nil {
		fail(err)
	}

	config := session.Voice

	for {
		for i, v := range voices.Voices {
			marker := " "

			if v.ID == config.VoiceID {
				marker = "*"
			}

			output.WriteString(fmt.Sprintf("%s%2d) %s  %s\n", marker, i+1, v.Name, v.Description))
		}

		output.WriteString(fmt.Sprintf("speed %d, volume %d\n", config.Speed, config.Volume))
		output.WriteString("<n> select voice, speed <0-9>, volume <0-9>, /preview, /next\n")

		input := prompt(reader)
		fields := strings.Fields(input)

		switch {
		case input == "/next" || input == "":
			next, err := c.Sessions.SetVoice(ctx, session.ID, config)

			if err != nil {
				output.WriteString(err.Error() + "\n")
				continue
			}

			return next

		case input == "/preview":
			data, _, err := c.Sessions.Preview(ctx, session.ID, config)

			if err != nil {
				output.WriteString(err.Error() + "\n")
				continue
			}

			name := "preview_" + config.VoiceID + "." + voice.Format

			if err := os.WriteFile(name, data, 0o644); err != nil {
				output.WriteString(err.Error() + "\n")
				continue
			}

			output.WriteString("Preview saved to " + name + "\n")

		case len(fields) == 2 && (fields[0] == "speed" || fields[0] == "volume"):
			val, err := strconv.Atoi(fields[1])

			if err != nil || val < voice.DefaultRange.Min || val > voice.DefaultRange.Max {
				output.WriteString("Value must be between 0 and 9\n")
				continue
			}

			if fields[0] == "speed" {
				config.Speed = val
			} else {
				config.Volume = val
			}

		default:
			idx, err := strconv.Atoi(input)

			if err != nil || idx < 1 || idx > len(voices.Voices) {
				output.WriteString("Unknown command\n")
				continue
			}

			config.VoiceID = voices.Voices[idx-1].ID
		}
	}
}

func play(ctx context.Context, synthesis *client.Synthesis, reader *bufio.Reader) {
	output := os.Stdout

	duration := time.Duration(synthesis.Duration * float64(time.Second))

	timeline := player.NewTimeline(duration)

	p := player.New(nil)
	p.Load(timeline, player.Source{
		ID:     synthesis.ID,
		Format: synthesis.Format,
		URL:    synthesis.AudioURL,
	})

	p.HandleLoaded(duration)

	for {
		timeline.Sync(p)
		state := p.State()

		status := "paused"

		if state.Playing {
			status = "playing"
		}

		output.WriteString(fmt.Sprintf("\n[%s] %s / %s  volume %.0f%%  rate %.2gx\n", status, clock(state.Position), clock(state.Duration), state.Volume*100, state.Rate))
		output.WriteString("p play/pause, f/b skip 15s, s <sec> seek, v <0-100> volume, r <rate> rate, d download, q quit\n")

		fields := strings.Fields(prompt(reader))

		if len(fields) == 0 {
			continue
		}

		arg := func() float64 {
			if len(fields) < 2 {
				return -1
			}

			val, err := strconv.ParseFloat(fields[1], 64)

			if err != nil {
				return -1
			}

			return val
		}

		switch fields[0] {
		case "p":
			if err := p.Toggle(); err != nil {
				output.WriteString(err.Error() + "\n")
			}

		case "f":
			p.Skip(player.SkipInterval)

		case "b":
			p.Skip(-player.SkipInterval)

		case "s":
			if val := arg(); val >= 0 {
				p.Seek(time.Duration(val * float64(time.Second)))
			}

		case "v":
			if val := arg(); val >= 0 {
				p.SetVolume(val / 100)
			}

		case "r":
			if val := arg(); val > 0 {
				p.SetRate(val)
			}

		case "d":
			download, err := p.Download(ctx)

			if err != nil {
				output.WriteString(err.Error() + "\n")
				continue
			}

			if download == nil {
				continue
			}

			if err := os.WriteFile(download.Name, download.Data, 0o644); err != nil {
				output.WriteString(err.Error() + "\n")
				continue
			}

			output.WriteString("Saved " + download.Name + "\n")

		case "q":
			return

		default:
			output.WriteString("Unknown command\n")
		}
	}
}

func prompt(reader *bufio.Reader) string {
	os.Stdout.WriteString(" >  ")

	input, err := reader.ReadString('\n')

	if err != nil {
		panic(err)
	}

	return strings.TrimSpace(input)
}

func readBlock(reader *bufio.Reader) string {
	var lines []string

	for {
		line, err := reader.ReadString('\n')

		if err != nil {
			panic(err)
		}

		line = strings.TrimRight(line, "\r\n")

		if line == "." {
			break
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func fail(err error) {
	os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(1)
}
