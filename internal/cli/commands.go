package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"reviewdesk-mobile/internal/domain"
	"reviewdesk-mobile/internal/export"
	"reviewdesk-mobile/internal/feedback"
	"reviewdesk-mobile/internal/screen"
	"reviewdesk-mobile/internal/service"

	"github.com/alecthomas/kong"
)

// CLI 命令树
type CLI struct {
	Login       LoginCmd       `cmd:"" help:"Sign in with your restaurant account."`
	Logout      LogoutCmd      `cmd:"" help:"Sign out and forget this device's notification credentials."`
	Whoami      WhoamiCmd      `cmd:"" help:"Show the signed-in user."`
	Dashboard   DashboardCmd   `cmd:"" help:"Show ratings and recent feedback."`
	Feedback    FeedbackCmd    `cmd:"" help:"Browse, resolve and export feedback."`
	Escalations EscalationsCmd `cmd:"" help:"Show open escalations for this device."`
	Device      DeviceCmd      `cmd:"" help:"Manage escalation notifications for this device."`
	Settings    SettingsCmd    `cmd:"" help:"View or change restaurant settings."`
}

// Execute 解析参数并运行命令；失败时把提示写到 app.Err 并返回错误
func Execute(ctx context.Context, app *App, args []string, opts ...kong.Option) error {
	var root CLI
	options := append([]kong.Option{
		kong.Name("reviewdesk"),
		kong.Description("Review and act on customer feedback from the terminal."),
		kong.Writers(app.Out, app.Err),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(app),
		kong.Vars{"severities": severityList()},
	}, opts...)

	parser, err := kong.New(&root, options...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err == nil {
		err = kctx.Run()
	}
	if err != nil {
		fmt.Fprint(app.Err, screen.Alert(err))
		return err
	}
	return nil
}

type LoginCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" env:"REVIEWDESK_PASSWORD" help:"Account password."`
}

func (c *LoginCmd) Run(ctx context.Context, app *App) error {
	sess, err := app.Sessions.Login(ctx, c.Email, c.Password)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "Signed in as %s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx context.Context, app *App) error {
	if err := app.Sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(app.Out, "Signed out.")
	return nil
}

type WhoamiCmd struct {
	Offline bool `help:"Show the cached user without contacting the server."`
}

func (c *WhoamiCmd) Run(ctx context.Context, app *App) error {
	var (
		u   domain.User
		err error
	)
	if c.Offline {
		u, err = app.Sessions.CachedUser(ctx)
	} else {
		u, err = app.Sessions.CurrentUser(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "%s <%s>", u.Name, u.Email)
	if u.Role != "" {
		fmt.Fprintf(app.Out, " (%s)", u.Role)
	}
	fmt.Fprintln(app.Out)
	return nil
}

type DashboardCmd struct {
	Recent int `default:"5" help:"Number of recent feedback entries to show."`
}

func (c *DashboardCmd) Run(ctx context.Context, app *App) error {
	r, err := app.Restaurants.Profile(ctx)
	if err != nil {
		return err
	}
	st, err := app.Restaurants.Stats(ctx)
	if err != nil {
		return err
	}
	recent, err := app.Feedback.List(ctx, service.ListQuery{Page: 1, Limit: c.Recent})
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.Dashboard(r, st, recent.Items, app.Now()))
	return nil
}

type FeedbackCmd struct {
	List    FeedbackListCmd    `cmd:"" help:"List feedback."`
	Show    FeedbackShowCmd    `cmd:"" help:"Show one feedback entry."`
	Resolve FeedbackResolveCmd `cmd:"" help:"Mark feedback as resolved."`
	Export  FeedbackExportCmd  `cmd:"" help:"Export feedback to an Excel workbook."`
}

type FeedbackListCmd struct {
	Page   int    `default:"1" help:"Page number."`
	Limit  int    `default:"20" help:"Page size."`
	Status string `default:"all" enum:"all,escalated,resolved,pending" help:"Status filter (${enum})."`
	Search string `short:"s" help:"Search customer name, email, phone or comment."`
}

func (c *FeedbackListCmd) Run(ctx context.Context, app *App) error {
	page, err := app.Feedback.List(ctx, service.ListQuery{
		Page:   c.Page,
		Limit:  c.Limit,
		Status: feedback.ParseStatus(c.Status),
		Search: c.Search,
	})
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.FeedbackList(page.Items, page.Total, app.Now()))
	return nil
}

type FeedbackShowCmd struct {
	ID string `arg:"" help:"Feedback id."`
}

func (c *FeedbackShowCmd) Run(ctx context.Context, app *App) error {
	f, err := app.Feedback.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.FeedbackDetail(f, app.Now()))
	return nil
}

type FeedbackResolveCmd struct {
	ID string `arg:"" help:"Feedback id."`
}

func (c *FeedbackResolveCmd) Run(ctx context.Context, app *App) error {
	f, err := app.Feedback.Resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.FeedbackDetail(f, app.Now()))
	return nil
}

type FeedbackExportCmd struct {
	Output string `short:"o" default:"feedback.xlsx" type:"path" help:"Output file."`
	Status string `default:"all" enum:"all,escalated,resolved,pending" help:"Status filter (${enum})."`
}

func (c *FeedbackExportCmd) Run(ctx context.Context, app *App) error {
	items, err := app.Feedback.All(ctx, feedback.ParseStatus(c.Status))
	if err != nil {
		return err
	}
	data, err := export.FeedbackWorkbook(items)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	fmt.Fprintf(app.Out, "Exported %d feedback entries to %s\n", len(items), c.Output)
	return nil
}

type EscalationsCmd struct {
	Session bool `help:"List escalated feedback for the whole restaurant instead of this device's subscription."`
	Limit   int  `default:"50" help:"Page size when --session is set."`
}

func (c *EscalationsCmd) Run(ctx context.Context, app *App) error {
	if c.Session {
		page, err := app.Feedback.Escalated(ctx, c.Limit)
		if err != nil {
			return err
		}
		fmt.Fprint(app.Out, screen.FeedbackList(page.Items, page.Total, app.Now()))
		return nil
	}

	reg, err := app.Devices.Current(ctx)
	if err != nil {
		return err
	}
	items, err := app.Devices.Escalations(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.Escalations(items, reg, app.Now()))
	return nil
}

type DeviceCmd struct {
	Register  DeviceRegisterCmd  `cmd:"" help:"Register this device for escalation notifications."`
	Severity  DeviceSeverityCmd  `cmd:"" help:"Change the minimum severity this device is notified about."`
	Heartbeat DeviceHeartbeatCmd `cmd:"" help:"Tell the server this device is still active."`
	Status    DeviceStatusCmd    `cmd:"" help:"Show this device's registration."`
}

type DeviceRegisterCmd struct {
	ID         string `name:"id" help:"Device id (defaults to this installation's id)."`
	Name       string `help:"Device name shown to other staff."`
	PushToken  string `required:"" help:"Push token issued by the notification service."`
	Permission string `default:"undetermined" help:"Notification permission reported by the OS (granted, denied, undetermined)."`
	Severity   string `default:"medium" help:"Minimum severity to be notified about (${severities})."`
}

func (c *DeviceRegisterCmd) Run(ctx context.Context, app *App) error {
	name := c.Name
	if name == "" {
		name = app.Config.Device.Name
	}
	reg, err := app.Devices.Register(ctx, service.RegisterDeviceInput{
		DeviceID:   c.ID,
		DeviceName: name,
		PushToken:  c.PushToken,
		Permission: domain.PushPermission(c.Permission),
		Severity:   severityArg(c.Severity),
	})
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.DeviceStatus(&reg))
	return nil
}

type DeviceSeverityCmd struct {
	Level string `arg:"" help:"New minimum severity (${severities})."`
}

func (c *DeviceSeverityCmd) Run(ctx context.Context, app *App) error {
	reg, err := app.Devices.UpdateSeverity(ctx, severityArg(c.Level))
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.DeviceStatus(&reg))
	return nil
}

type DeviceHeartbeatCmd struct{}

func (c *DeviceHeartbeatCmd) Run(ctx context.Context, app *App) error {
	if err := app.Devices.Heartbeat(ctx); err != nil {
		return err
	}
	fmt.Fprintln(app.Out, "Heartbeat sent.")
	return nil
}

type DeviceStatusCmd struct{}

func (c *DeviceStatusCmd) Run(ctx context.Context, app *App) error {
	reg, err := currentDevice(ctx, app)
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.DeviceStatus(reg))
	return nil
}

type SettingsCmd struct {
	Show   SettingsShowCmd   `cmd:"" help:"Show restaurant settings."`
	Update SettingsUpdateCmd `cmd:"" help:"Change restaurant settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx context.Context, app *App) error {
	r, err := app.Restaurants.Profile(ctx)
	if err != nil {
		return err
	}
	reg, err := currentDevice(ctx, app)
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.Settings(r, reg))
	return nil
}

type SettingsUpdateCmd struct {
	Name                *string  `help:"Restaurant name."`
	Address             *string  `help:"Street address."`
	Phone               *string  `help:"Contact phone."`
	Email               *string  `help:"Contact email."`
	NotificationEmail   *string  `help:"Where escalation emails are sent."`
	EscalationThreshold *float64 `help:"Average rating at or below which feedback is escalated."`
}

func (c *SettingsUpdateCmd) Run(ctx context.Context, app *App) error {
	r, err := app.Restaurants.UpdateProfile(ctx, domain.RestaurantUpdate{
		Name:                c.Name,
		Address:             c.Address,
		Phone:               c.Phone,
		Email:               c.Email,
		NotificationEmail:   c.NotificationEmail,
		EscalationThreshold: c.EscalationThreshold,
	})
	if err != nil {
		return err
	}
	reg, err := currentDevice(ctx, app)
	if err != nil {
		return err
	}
	fmt.Fprint(app.Out, screen.Settings(r, reg))
	return nil
}

// severityArg 规范化命令行输入；无法识别时原样交给服务层校验
func severityArg(s string) domain.Severity {
	if sev, ok := domain.ParseSeverity(s); ok {
		return sev
	}
	return domain.Severity(s)
}

func severityList() string {
	names := make([]string, len(domain.Severities))
	for i, sev := range domain.Severities {
		names[i] = string(sev)
	}
	return strings.Join(names, ", ")
}

// currentDevice 未注册返回 nil
func currentDevice(ctx context.Context, app *App) (*domain.DeviceRegistration, error) {
	reg, err := app.Devices.Current(ctx)
	if errors.Is(err, service.ErrDeviceNotRegistered) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
