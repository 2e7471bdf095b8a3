package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/td0m/pomotask/pkg/persist"
	"github.com/td0m/pomotask/pkg/task"
)

var (
	backend = flag.String("backend", "json", "Storage backend to measure: json or bolt")
	years   = flag.Int("years", 10, "Years of tasks to generate")
	perDay  = flag.Int("per-day", 30, "Tasks created per day")
)

func main() {
	flag.Parse()

	total := 365 * *perDay * *years
	file := path.Join(os.TempDir(), "pomotask-estimate."+*backend)
	check(os.RemoveAll(file))
	db, err := persist.Open(persist.Options{Backend: *backend, Path: file})
	check(err)
	defer db.Close()
	p := persist.NewTasks(db)

	tasks := generate(total)
	writeTime := measureTime(func() {
		check(p.Save(tasks))
	})

	var loaded []task.Task
	readTime := measureTime(func() {
		loaded, err = p.Load()
		check(err)
	})
	if len(loaded) != total {
		panic(fmt.Sprintf("loaded %d tasks, saved %d", len(loaded), total))
	}

	info, err := os.Stat(file)
	check(err)
	fmt.Printf("Backend: %s\n", *backend)
	fmt.Printf("Tasks: %d years, %d per day (%d total)\n", *years, *perDay, total)
	fmt.Printf("File size: %dMB\n", info.Size()/1024/1024)
	fmt.Printf("Write time: %dms\n", writeTime.Milliseconds())
	fmt.Printf("Read time: %dms\n", readTime.Milliseconds())
}

func generate(n int) []task.Task {
	start := time.Now().AddDate(0, 0, -n)
	tasks := make([]task.Task, n)
	for i := range tasks {
		created := start.Add(time.Duration(i) * time.Minute)
		t := task.Task{
			ID:        task.NewID(),
			Text:      strings.Repeat("x", 10+i%50),
			CreatedAt: created,
		}
		if i%3 == 0 {
			edited := created.Add(time.Hour)
			t.EditedAt = &edited
		}
		tasks[i] = t
	}
	return tasks
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}
