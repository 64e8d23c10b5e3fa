// remindctl is a small operational tool for managing reminders directly,
// mostly used to seed test data and unstick reminders left with a broken
// frequency value.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/wellspring/internal/repository"
	"github.com/limbo/wellspring/internal/service"
	"github.com/limbo/wellspring/pkg/cleanup"
	"github.com/limbo/wellspring/pkg/config"
)

func main() {
	service.InitValidator()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	reminders := service.NewRemindersService(repository.NewRemindersRepo(&dbCfg))
	users := repository.NewUsersRepo(&dbCfg)
	defer cleanup.CleanUp()

	if len(os.Args) < 2 {
		usage()
	}
	ctx := context.Background()
	switch os.Args[1] {
	case "create":
		createCmd(ctx, reminders, os.Args[2:])
	case "list":
		listCmd(ctx, reminders, os.Args[2:])
	case "cancel":
		cancelCmd(ctx, reminders, os.Args[2:])
	case "set-token":
		setTokenCmd(ctx, users, os.Args[2:])
	case "set-offset":
		setOffsetCmd(ctx, users, os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: remindctl <create|list|cancel|set-token|set-offset> [flags]")
	os.Exit(2)
}

func setTokenCmd(ctx context.Context, users repository.UsersRepositoryI, args []string) {
	fs := flag.NewFlagSet("set-token", flag.ExitOnError)
	user := fs.String("user", "", "user id")
	token := fs.String("token", "", "FCM device token, empty to unregister")
	fs.Parse(args)

	uid, err := uuid.Parse(*user)
	if err != nil {
		log.Fatal("parsing user id error: " + err.Error())
	}
	var tokenPtr *string
	if *token != "" {
		tokenPtr = token
	}
	if err := users.UpdateFCMToken(ctx, uid, tokenPtr); err != nil {
		log.Fatal("updating token error: " + err.Error())
	}
	fmt.Println("ok")
}

func setOffsetCmd(ctx context.Context, users repository.UsersRepositoryI, args []string) {
	fs := flag.NewFlagSet("set-offset", flag.ExitOnError)
	user := fs.String("user", "", "user id")
	offset := fs.Int("minutes", 0, "local clock offset from UTC in minutes")
	clear := fs.Bool("clear", false, "drop the offset, treating trigger times as UTC")
	fs.Parse(args)

	uid, err := uuid.Parse(*user)
	if err != nil {
		log.Fatal("parsing user id error: " + err.Error())
	}
	var offsetPtr *int
	if !*clear {
		offsetPtr = offset
	}
	if err := users.UpdateUTCOffset(ctx, uid, offsetPtr); err != nil {
		log.Fatal("updating offset error: " + err.Error())
	}
	fmt.Println("ok")
}

func createCmd(ctx context.Context, reminders service.RemindersServiceI, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	user := fs.String("user", "", "owner user id")
	rType := fs.String("type", "custom", "reminder type")
	title := fs.String("title", "", "reminder title")
	message := fs.String("message", "", "reminder message")
	at := fs.String("at", "", "trigger time in the user's local clock, RFC3339")
	frequency := fs.String("frequency", "", "one-time, hourly, daily, weekly or monthly")
	fs.Parse(args)

	uid, err := uuid.Parse(*user)
	if err != nil {
		log.Fatal("parsing user id error: " + err.Error())
	}
	trigger, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		log.Fatal("parsing trigger time error: " + err.Error())
	}
	r, err := reminders.CreateReminder(ctx, uid, &service.CreateReminderRequest{
		Type:        *rType,
		Title:       *title,
		Message:     *message,
		TriggerTime: trigger,
		Frequency:   *frequency,
	})
	if err != nil {
		log.Fatal("creating reminder error: " + err.Error())
	}
	fmt.Println(r.ID)
}

func listCmd(ctx context.Context, reminders service.RemindersServiceI, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	user := fs.String("user", "", "owner user id")
	limit := fs.Int("limit", 20, "max reminders to list")
	offset := fs.Int("offset", 0, "reminders to skip")
	fs.Parse(args)

	uid, err := uuid.Parse(*user)
	if err != nil {
		log.Fatal("parsing user id error: " + err.Error())
	}
	list, err := reminders.GetUserReminders(ctx, uid, service.PaginationOpts{Limit: *limit, Offset: *offset})
	if err != nil {
		log.Fatal("listing reminders error: " + err.Error())
	}
	for _, r := range list {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n", r.ID, r.Status, r.Type, r.TriggerTime.Format(time.RFC3339), r.Title)
	}
}

func cancelCmd(ctx context.Context, reminders service.RemindersServiceI, args []string) {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	user := fs.String("user", "", "owner user id")
	id := fs.String("id", "", "reminder id")
	fs.Parse(args)

	uid, err := uuid.Parse(*user)
	if err != nil {
		log.Fatal("parsing user id error: " + err.Error())
	}
	rid, err := uuid.Parse(*id)
	if err != nil {
		log.Fatal("parsing reminder id error: " + err.Error())
	}
	if err := reminders.CancelReminder(ctx, rid, uid); err != nil {
		log.Fatal("cancelling reminder error: " + err.Error())
	}
	fmt.Println("cancelled")
}
