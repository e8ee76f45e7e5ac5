// Command console is an interactive terminal shell over the payroll client:
// it signs in through the session store, walks the guarded route surface and
// renders each page's data as text.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"payroll/client/api"
	"payroll/client/format"
	"payroll/client/nav"
	"payroll/client/routes"
	"payroll/client/services"
	"payroll/client/session"
	"payroll/client/storage"
	"payroll/client/theme"
)

type shell struct {
	session *session.Store
	theme   *theme.Store
	path    string

	employees   *services.Employees
	departments *services.Departments
	attendance  *services.Attendance
	leave       *services.Leave
	documents   *services.Documents
	salary      *services.Salary
	analytics   *services.Analytics
	compliance  *services.Compliance
	assistant   *services.Assistant
	profile     *services.Profile
}

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(newConsoleHandler(os.Stderr, slog.LevelInfo)))

	baseURL := os.Getenv("PAYROLL_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	stateDir := os.Getenv("PAYROLL_STATE_DIR")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			stateDir = filepath.Join(home, ".payroll")
		}
	}
	store := storage.Open(stateDir)
	if store.Degraded() {
		slog.Warn("state persistence unavailable, session will not survive restarts")
	}

	sessionStore := session.New(store)
	var sh *shell
	client := api.New(baseURL, sessionStore,
		api.WithUnauthorizedHandler(func() {
			if sh != nil {
				sh.sessionExpired()
			}
		}),
		api.WithForbiddenHandler(func(message string) {
			slog.Warn("access denied", "reason", message)
		}),
		api.WithTransientHandler(func(message string) {
			slog.Warn("request trouble", "reason", message)
		}),
	)
	sessionStore.AttachGateway(client)

	themeStore := theme.New(store, func(mode theme.Mode) {
		slog.Info("theme applied", "mode", string(mode))
	})

	sh = &shell{
		session:     sessionStore,
		theme:       themeStore,
		path:        routes.PathDashboard,
		employees:   services.NewEmployees(client),
		departments: services.NewDepartments(client),
		attendance:  services.NewAttendance(client),
		leave:       services.NewLeave(client),
		documents:   services.NewDocuments(client),
		salary:      services.NewSalary(client),
		analytics:   services.NewAnalytics(client),
		compliance:  services.NewCompliance(client),
		assistant:   services.NewAssistant(client),
		profile:     services.NewProfile(client, sessionStore),
	}

	unsubscribe := sessionStore.Subscribe(func(snap session.Snapshot) {
		slog.Info("session", "state", snap.State.String())
	})
	defer unsubscribe()

	sessionStore.Bootstrap()
	sh.navigate(sh.path)

	fmt.Println(`payroll console. Type "help" for commands.`)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", sh.path)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		sh.run(line)
	}
}

func (sh *shell) run(line string) {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		fmt.Println(`commands:
  login <email> <password>   sign in
  logout                     sign out
  whoami                     show the current identity
  menu                       show the navigation menu
  go <path>                  navigate (e.g. go /employees)
  theme                      toggle dark/light
  ask <question>             ask the assistant
  quit`)
	case "login":
		if len(args) < 2 {
			fmt.Println("usage: login <email> <password>")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := sh.session.Login(ctx, args[0], args[1]); err != nil {
			fmt.Println("login failed:", err)
			return
		}
		sh.navigate(routes.PathDashboard)
	case "logout":
		sh.session.Logout()
		sh.navigate(routes.PathLogin)
	case "whoami":
		identity, ok := sh.session.Identity()
		if !ok {
			fmt.Println("not signed in")
			return
		}
		fmt.Printf("%s <%s> role=%s\n", identity.FullName, identity.Email, identity.Role)
	case "menu":
		entries := nav.ForSnapshot(sh.session.Snapshot())
		if entries == nil {
			fmt.Println("sign in to see the menu")
			return
		}
		for _, entry := range entries {
			fmt.Printf("  %-20s %s\n", entry.Path, entry.Label)
		}
	case "go":
		if len(args) != 1 {
			fmt.Println("usage: go <path>")
			return
		}
		sh.navigate(args[0])
	case "theme":
		sh.theme.Toggle()
	case "ask":
		if len(args) == 0 {
			fmt.Println("usage: ask <question>")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		answer, err := sh.assistant.Ask(ctx, strings.Join(args, " "))
		if err != nil {
			fmt.Println("ask failed:", err)
			return
		}
		fmt.Println(answer)
	default:
		fmt.Println("unknown command, try help")
	}
}

// sessionExpired handles a 401 from any page fetch: the session store has
// already been invalidated, so route the shell back to the login page.
func (sh *shell) sessionExpired() {
	slog.Warn("session expired, please log in again")
	sh.navigate(routes.PathLogin)
}

// navigate runs the route guard and renders whatever it decides, following
// redirects until the decision settles.
func (sh *shell) navigate(path string) {
	for range [4]int{} {
		decision := routes.Resolve(path, sh.session.Snapshot())
		switch decision.Action {
		case routes.ShowLoading:
			fmt.Println("loading...")
			return
		case routes.Redirect:
			path = decision.Target
			continue
		case routes.Render:
			sh.path = decision.Path
			sh.render(decision.Path)
			return
		}
	}
}

func (sh *shell) render(path string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch path {
	case routes.PathLogin:
		fmt.Println("-- login: use the login command")
	case routes.PathUnauthorized:
		fmt.Println("-- unauthorized: you do not have access to that page")
	case routes.PathDashboard:
		sh.renderDashboard(ctx)
	case "/employees":
		employees, err := sh.employees.List(ctx)
		if err != nil {
			return
		}
		for _, emp := range employees {
			dept := "-"
			if emp.Department != nil {
				dept = emp.Department.Name
			}
			fmt.Printf("  #%d %-25s %-30s %s\n", emp.ID, emp.FullName, emp.Email, dept)
		}
	case "/departments":
		departments, err := sh.departments.List(ctx)
		if err != nil {
			return
		}
		for _, dept := range departments {
			fmt.Printf("  #%d %-25s headcount=%d\n", dept.ID, dept.Name, dept.Headcount)
		}
	case "/attendance":
		records, err := sh.attendance.Mine(ctx)
		if err != nil {
			return
		}
		for _, rec := range records {
			fmt.Printf("  %s in=%s hours=%.1f\n", rec.Day, rec.ClockIn.Format("15:04"), rec.WorkedHours)
		}
	case "/leave-management":
		balance, err := sh.leave.MyBalance(ctx)
		if err != nil {
			return
		}
		fmt.Printf("  balance %d: %.1f of %.1f days remaining\n", balance.Year, balance.Remaining, balance.Entitled)
		requests, err := sh.leave.Mine(ctx)
		if err != nil {
			return
		}
		for _, req := range requests {
			fmt.Printf("  #%d %s %s..%s %.1fd %s\n", req.ID, req.Type, req.StartDate, req.EndDate, req.Days, req.Status)
		}
	case "/documents":
		docs, err := sh.documents.Mine(ctx)
		if err != nil {
			return
		}
		for _, doc := range docs {
			fmt.Printf("  %s %-30s %s %dB\n", doc.ID, doc.Name, doc.Category, doc.SizeBytes)
		}
	case "/compliance":
		report, err := sh.compliance.Report(ctx, time.Now().Year())
		if err != nil {
			return
		}
		fmt.Printf("  %d: %d records, %.0f%% processed, tax withheld %s\n",
			report.Year, report.RecordsTotal, report.ProcessedRate, format.INR(report.TaxWithheld))
	case "/salary":
		records, err := sh.salary.Unprocessed(ctx)
		if err != nil {
			return
		}
		fmt.Printf("  %d unprocessed records\n", len(records))
		for _, rec := range records {
			fmt.Printf("  #%d %-25s %d/%d net %s\n", rec.ID, rec.Employee, rec.Month, rec.Year, format.INR(rec.NetSalary))
		}
	case "/payslips":
		records, err := sh.salary.Mine(ctx)
		if err != nil {
			return
		}
		for _, rec := range records {
			marker := " "
			if !services.ConsistentFigures(rec) {
				marker = "!"
			}
			fmt.Printf("  %s%d/%d gross %s net %s\n", marker, rec.Month, rec.Year,
				format.INR(rec.GrossSalary), format.INR(rec.NetSalary))
		}
	case "/analytics":
		summary, err := sh.analytics.Summary(ctx)
		if err != nil {
			return
		}
		fmt.Printf("  headcount=%d departments=%d ytd gross %s net %s\n",
			summary.Headcount, summary.Departments,
			format.INR(summary.PayrollYTDGross), format.INR(summary.PayrollYTDNet))
	case "/ai-assistant":
		fmt.Println("-- assistant: use the ask command")
	case "/profile":
		emp, err := sh.profile.Get(ctx)
		if err != nil {
			return
		}
		fmt.Printf("  %s, %s, joined %s\n", emp.FullName, emp.Designation, emp.JoiningDate)
	case "/settings":
		fmt.Printf("-- settings: theme is %s, use the theme command to toggle\n", sh.theme.Mode())
	default:
		fmt.Println("--", strings.TrimPrefix(path, "/"))
	}
}

func (sh *shell) renderDashboard(ctx context.Context) {
	identity, ok := sh.session.Identity()
	if !ok {
		return
	}
	fmt.Printf("-- dashboard: welcome, %s\n", identity.FullName)
	if sh.session.IsAdmin() {
		count, err := sh.employees.Count(ctx)
		if err == nil {
			fmt.Printf("  active employees: %d\n", count)
		}
	}
}
