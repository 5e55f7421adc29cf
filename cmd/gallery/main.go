package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"shrikemedia/internal/client"
	"shrikemedia/internal/modules/download"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	apiURL := os.Getenv("GALLERY_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	api := client.NewAPI(apiURL)

	identity, err := client.DefaultIdentity()
	if err != nil {
		log.Fatal(err)
	}
	dataDir, err := dataDir()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "view":
		runView(ctx, api, args)
	case "photos":
		runPhotos(ctx, api, args)
	case "like":
		runLike(ctx, api, identity, args)
	case "comments":
		runComments(ctx, api, args)
	case "comment":
		runComment(ctx, api, identity, args)
	case "queue":
		runQueue(ctx, api, dataDir, args)
	case "checkout":
		runCheckout(ctx, api, dataDir, args)
	case "download":
		runDownload(ctx, api, args)
	case "zip":
		runZip(ctx, api, args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gallery <command> [args]

  view <slug>                       show event details
  photos <slug>                     list every photo, batch by batch
  like <slug> <photo-id>            toggle a like on a photo
  comments <slug>                   show the guestbook
  comment <slug> -name X -body Y    sign the guestbook
  queue <slug> [add|remove|clear|list] [photo-id]
  checkout <slug> -email X          turn the queue into a download link
  download <slug> <photo-id> [-dest DIR]
  zip <token> [-out FILE]           save a download session as a zip`)
}

func dataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "shrikemedia"), nil
}

func runView(ctx context.Context, api *client.API, args []string) {
	if len(args) < 1 {
		log.Fatal("usage: gallery view <slug>")
	}
	event, err := api.Event(ctx, args[0])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s (%s)\n", event.Title, event.Date.Format("2 January 2006"))
	if event.Description != nil {
		fmt.Println(*event.Description)
	}
}

func runPhotos(ctx context.Context, api *client.API, args []string) {
	if len(args) < 1 {
		log.Fatal("usage: gallery photos <slug>")
	}

	pager := client.NewPager(api, args[0])
	for pager.HasMore() {
		if _, err := pager.LoadMore(ctx); err != nil {
			log.Fatal(err)
		}
	}

	for _, p := range pager.Photos() {
		fmt.Printf("%s  %4dx%-4d  %3d likes  %s\n", p.ID, p.Width, p.Height, p.LikeCount, p.Filename)
	}
	fmt.Printf("%d photos\n", pager.Loaded())
}

func runLike(ctx context.Context, api *client.API, identity *client.Identity, args []string) {
	if len(args) < 2 {
		log.Fatal("usage: gallery like <slug> <photo-id>")
	}
	slug, photoID := args[0], args[1]

	deviceID, err := identity.ID()
	if err != nil {
		log.Fatal(err)
	}

	likedIDs, err := api.LikedPhotoIDs(ctx, slug, deviceID)
	if err != nil {
		log.Fatal(err)
	}

	engine := client.NewLikeEngine(api, deviceID)
	engine.Seed(nil, likedIDs)
	if err := engine.Toggle(ctx, photoID); err != nil {
		log.Fatal(err)
	}

	if engine.Liked(photoID) {
		fmt.Printf("liked %s (%d likes)\n", photoID, engine.Count(photoID))
	} else {
		fmt.Printf("unliked %s\n", photoID)
	}
}

func runComments(ctx context.Context, api *client.API, args []string) {
	if len(args) < 1 {
		log.Fatal("usage: gallery comments <slug>")
	}
	comments, err := api.Comments(ctx, args[0])
	if err != nil {
		log.Fatal(err)
	}

	for _, cm := range comments {
		fmt.Printf("%s  %s\n  %s\n", cm.CreatedAt.Format("2 Jan 15:04"), cm.AuthorName, cm.Body)
	}
	fmt.Printf("%d comments\n", len(comments))
}

func runComment(ctx context.Context, api *client.API, identity *client.Identity, args []string) {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	name := fs.String("name", "", "display name (blank becomes Guest)")
	body := fs.String("body", "", "comment text (required)")
	if len(args) < 1 {
		log.Fatal("usage: gallery comment <slug> -body <text> [-name <name>]")
	}
	fs.Parse(args[1:])
	if *body == "" {
		log.Fatal("-body is required")
	}

	deviceID, err := identity.ID()
	if err != nil {
		log.Fatal(err)
	}

	form := client.NewCommentForm(api, args[0], deviceID)
	// A human reads the page before writing; a CLI call arrives instantly,
	// which the store's dwell gate would swallow without this pause.
	time.Sleep(2100 * time.Millisecond)

	cm, err := form.Submit(ctx, *name, *body, "")
	if err != nil {
		log.Fatal(err)
	}
	if cm == nil {
		fmt.Println("submitted")
		return
	}
	fmt.Printf("posted as %s\n", cm.AuthorName)
}

func runQueue(ctx context.Context, api *client.API, dataDir string, args []string) {
	if len(args) < 1 {
		log.Fatal("usage: gallery queue <slug> [add|remove|clear|list] [photo-id]")
	}
	slug := args[0]

	event, err := api.Event(ctx, slug)
	if err != nil {
		log.Fatal(err)
	}
	queue, err := client.OpenQueue(dataDir, event.ID)
	if err != nil {
		log.Fatal(err)
	}

	action := "list"
	if len(args) > 1 {
		action = args[1]
	}

	switch action {
	case "add", "remove":
		if len(args) < 3 {
			log.Fatalf("usage: gallery queue <slug> %s <photo-id>", action)
		}
		if action == "add" {
			err = queue.Add(args[2])
		} else {
			err = queue.Remove(args[2])
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d queued\n", queue.Count())
	case "clear":
		if err := queue.Clear(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("queue cleared")
	case "list":
		for _, id := range queue.IDs() {
			fmt.Println(id)
		}
		fmt.Printf("%d queued\n", queue.Count())
	default:
		log.Fatalf("unknown queue action %q", action)
	}
}

func runCheckout(ctx context.Context, api *client.API, dataDir string, args []string) {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	email := fs.String("email", "", "where the download link belongs (required)")
	if len(args) < 1 {
		log.Fatal("usage: gallery checkout <slug> -email <address>")
	}
	fs.Parse(args[1:])
	if *email == "" {
		log.Fatal("-email is required")
	}

	event, err := api.Event(ctx, args[0])
	if err != nil {
		log.Fatal(err)
	}
	queue, err := client.OpenQueue(dataDir, event.ID)
	if err != nil {
		log.Fatal(err)
	}
	if queue.Count() == 0 {
		log.Fatal("queue is empty; add photos first")
	}

	token, err := api.CreateDownloadSession(ctx, download.CreateSessionRequest{
		EventID:  event.ID,
		Email:    *email,
		PhotoIDs: queue.IDs(),
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := queue.Clear(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("download token: %s (valid 72h)\n", token)
}

func runDownload(ctx context.Context, api *client.API, args []string) {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	dest := fs.String("dest", ".", "destination directory")
	if len(args) < 2 {
		log.Fatal("usage: gallery download <slug> <photo-id> [-dest DIR]")
	}
	slug, photoID := args[0], args[1]
	fs.Parse(args[2:])

	pager := client.NewPager(api, slug)
	var found bool
	for pager.HasMore() {
		if _, err := pager.LoadMore(ctx); err != nil {
			log.Fatal(err)
		}
	}

	exporter := client.NewExporter(api)
	for _, p := range pager.Photos() {
		if p.ID != photoID {
			continue
		}
		found = true
		path, err := exporter.InstantDownload(ctx, p, *dest)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("saved %s\n", path)
		break
	}
	if !found {
		log.Fatalf("photo %s not found in %s", photoID, slug)
	}
}

func runZip(ctx context.Context, api *client.API, args []string) {
	fs := flag.NewFlagSet("zip", flag.ExitOnError)
	out := fs.String("out", "photos.zip", "output zip path")
	if len(args) < 1 {
		log.Fatal("usage: gallery zip <token> [-out FILE]")
	}
	fs.Parse(args[1:])

	exporter := client.NewExporter(api)
	skipped, err := exporter.SaveSessionZip(ctx, args[0], *out)
	if err != nil {
		log.Fatal(err)
	}
	for _, name := range skipped {
		log.Printf("skipped %s", name)
	}
	fmt.Printf("saved %s\n", *out)
}
