// patitas es el CLI admin del marketplace: consume el backend vía el SDK
// (internal/api + features) en vez de armar requests a mano, así el CLI
// ejercita exactamente el mismo código que cualquier otro consumidor.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/patitas/internal/api"
	"github.com/dropDatabas3/patitas/internal/auth"
	"github.com/dropDatabas3/patitas/internal/cache"
	"github.com/dropDatabas3/patitas/internal/config"
	"github.com/dropDatabas3/patitas/internal/features/adoptions"
	"github.com/dropDatabas3/patitas/internal/features/clinics"
	"github.com/dropDatabas3/patitas/internal/features/donations"
	"github.com/dropDatabas3/patitas/internal/features/petshops"
	"github.com/dropDatabas3/patitas/internal/features/shelters"
	"github.com/dropDatabas3/patitas/internal/features/transactions"
	"github.com/dropDatabas3/patitas/internal/features/users"
	"github.com/dropDatabas3/patitas/internal/metrics"
	"github.com/dropDatabas3/patitas/internal/observability/logger"
)

type app struct {
	cfg *config.Config
	out string // "json" | "text"

	cache cache.Client

	users        *users.Service
	clinics      *clinics.Service
	shelters     *shelters.Service
	stores       *petshops.Service
	adoptions    *adoptions.Service
	donations    *donations.Service
	transactions *transactions.Service
}

// print imprime el resultado según --out: json indentado o, en text,
// un objeto compacto por línea (cómodo para grep/awk).
func (a *app) print(v any) {
	if a.out == "json" {
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Println(string(b))
		return
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		for i := 0; i < rv.Len(); i++ {
			b, _ := json.Marshal(rv.Index(i).Interface())
			fmt.Println(string(b))
		}
		return
	}
	b, _ := json.Marshal(v)
	fmt.Println(string(b))
}

// sanitized pasa cada record por su Sanitized() antes de imprimir: la salida
// del CLI nunca muestra URLs o contactos que no pasen los predicados.
func sanitized[T interface{ Sanitized() T }](items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, it.Sanitized())
	}
	return out
}

// actResult convierte el resultado bool de una acción en exit code:
// ok imprime "ok"; si falló, el error slot del service trae el mensaje.
func actResult(ok bool, errMsg string) error {
	if ok {
		fmt.Println("ok")
		return nil
	}
	if errMsg == "" {
		errMsg = "la acción falló"
	}
	return errors.New(errMsg)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", arg)
	}
	return id, nil
}

func main() {
	// .env es opcional; si no existe seguimos con el entorno del proceso.
	_ = godotenv.Load()

	var (
		cfgPath string
		out     string
		baseURL string
		token   string
	)

	var a app

	root := &cobra.Command{
		Use:           "patitas",
		Short:         "CLI admin del marketplace Patitas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if baseURL != "" {
				cfg.API.BaseURL = baseURL
			}
			if token != "" {
				cfg.API.Token = token
			}
			if out != "" {
				cfg.Out = out
			}

			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "patitas"})

			// Aviso temprano de token vencido: el backend igual va a rechazar,
			// pero el mensaje local es más claro que un 401 genérico.
			if cfg.API.Token != "" {
				if info, err := auth.Inspect(cfg.API.Token); err == nil && info != nil && info.Expired {
					logger.L().Warn("el token configurado está vencido",
						logger.String("subject", info.Subject))
				}
			}

			if err := metrics.RegisterClient(nil); err != nil {
				return fmt.Errorf("metrics: %w", err)
			}

			cc, err := cache.New(cacheConfig(cfg))
			if err != nil {
				return fmt.Errorf("cache: %w", err)
			}

			cl := api.New(cfg.API.BaseURL,
				api.WithToken(cfg.API.Token),
				api.WithTimeout(cfg.APITimeout()),
				api.WithCache(cc),
			)

			a = app{
				cfg:          cfg,
				out:          cfg.Out,
				cache:        cc,
				users:        users.NewService(cl),
				clinics:      clinics.NewService(cl),
				shelters:     shelters.NewService(cl),
				stores:       petshops.NewService(cl),
				adoptions:    adoptions.NewService(cl),
				donations:    donations.NewService(cl),
				transactions: transactions.NewService(cl),
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.cache != nil {
				_ = a.cache.Close()
			}
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("PATITAS_CONFIG"), "Ruta del YAML de configuración (env PATITAS_CONFIG)")
	root.PersistentFlags().StringVar(&baseURL, "api-url", "", "URL base del backend (pisa config y env)")
	root.PersistentFlags().StringVar(&token, "token", "", "Bearer token (pisa config y env)")
	root.PersistentFlags().StringVar(&out, "out", "", "Formato de salida: json|text")

	root.AddCommand(usersCmd(&a))
	root.AddCommand(clinicsCmd(&a))
	root.AddCommand(sheltersCmd(&a))
	root.AddCommand(storesCmd(&a))
	root.AddCommand(adoptionsCmd(&a))
	root.AddCommand(donationsCmd(&a))
	root.AddCommand(transactionsCmd(&a))
	root.AddCommand(syncCmd(&a))
	root.AddCommand(tokenCmd(&a))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func cacheConfig(cfg *config.Config) cache.Config {
	cc := cache.Config{Driver: cfg.Cache.Kind, DefaultTTL: cfg.CacheTTL()}
	cc.Redis.Addr = cfg.Cache.Redis.Addr
	cc.Redis.Password = cfg.Cache.Redis.Password
	cc.Redis.DB = cfg.Cache.Redis.DB
	cc.Redis.Prefix = cfg.Cache.Redis.Prefix
	return cc
}

// ───────────────────────── users ─────────────────────────

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Usuarios del panel admin"}

	var f users.Filters
	var activeStr string
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar usuarios con filtros",
		RunE: func(cmd *cobra.Command, args []string) error {
			if activeStr != "" {
				v := activeStr == "true"
				f.Active = &v
			}
			items, err := a.users.Fetch(cmd.Context(), f)
			if err != nil {
				return errors.New(a.users.Err())
			}
			a.print(sanitized(items))
			return nil
		},
	}
	list.Flags().StringVar(&f.Query, "q", "", "Búsqueda por nombre o email")
	list.Flags().StringVar(&f.Role, "role", "", "user|admin")
	list.Flags().StringVar(&f.Plan, "plan", "", "free|pro")
	list.Flags().StringVar(&activeStr, "active", "", "true|false")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Detalle de un usuario (store-first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			u, err := a.users.FetchByID(cmd.Context(), id)
			if err != nil {
				return errors.New(a.users.Err())
			}
			a.print(u.Sanitized())
			return nil
		},
	}

	// run se resuelve dentro de RunE: los services recién existen después
	// del PersistentPreRunE del root.
	action := func(use, short string, run func(context.Context, int64) bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return actResult(run(cmd.Context(), id), a.users.Err())
			},
		}
	}

	setPlan := &cobra.Command{
		Use:   "set-plan <id> <plan>",
		Short: "Cambiar el plan de un usuario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return actResult(a.users.SetPlan(cmd.Context(), id, args[1]), a.users.Err())
		},
	}

	cmd.AddCommand(list, get,
		action("grant-pro", "Dar plan pro", func(ctx context.Context, id int64) bool { return a.users.GrantPro(ctx, id) }),
		action("revoke-pro", "Quitar plan pro", func(ctx context.Context, id int64) bool { return a.users.RevokePro(ctx, id) }),
		action("grant-admin", "Dar rol admin", func(ctx context.Context, id int64) bool { return a.users.GrantAdmin(ctx, id) }),
		action("revoke-admin", "Quitar rol admin", func(ctx context.Context, id int64) bool { return a.users.RevokeAdmin(ctx, id) }),
		action("activate", "Activar cuenta", func(ctx context.Context, id int64) bool { return a.users.Activate(ctx, id) }),
		action("deactivate", "Desactivar cuenta", func(ctx context.Context, id int64) bool { return a.users.Deactivate(ctx, id) }),
		setPlan,
	)
	return cmd
}

// ───────────────────────── clinics ─────────────────────────

func clinicsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "clinics", Short: "Directorio de clínicas veterinarias"}

	var f clinics.Filters
	var verifiedStr string
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar clínicas con filtros",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verifiedStr != "" {
				v := verifiedStr == "true"
				f.Verified = &v
			}
			items, err := a.clinics.Fetch(cmd.Context(), f)
			if err != nil {
				return errors.New(a.clinics.Err())
			}
			a.print(sanitized(items))
			return nil
		},
	}
	list.Flags().StringVar(&f.City, "city", "", "Filtrar por ciudad")
	list.Flags().StringVar(&f.Service, "service", "", "Filtrar por servicio ofrecido")
	list.Flags().StringVar(&verifiedStr, "verified", "", "true|false")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Detalle de una clínica (store-first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.clinics.FetchByID(cmd.Context(), id)
			if err != nil {
				return errors.New(a.clinics.Err())
			}
			a.print(c.Sanitized())
			return nil
		},
	}

	var in clinics.UpdateInput
	var name, city, address, phone, email, website, photo string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update parcial de una clínica (solo flags presentes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("city") {
				in.City = &city
			}
			if cmd.Flags().Changed("address") {
				in.Address = &address
			}
			if cmd.Flags().Changed("phone") {
				in.Phone = &phone
			}
			if cmd.Flags().Changed("email") {
				in.Email = &email
			}
			if cmd.Flags().Changed("website") {
				in.Website = &website
			}
			if cmd.Flags().Changed("photo-url") {
				in.PhotoURL = &photo
			}
			c, err := a.clinics.Update(cmd.Context(), id, in)
			if err != nil {
				return errors.New(a.clinics.Err())
			}
			a.print(c.Sanitized())
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "Nombre")
	update.Flags().StringVar(&city, "city", "", "Ciudad")
	update.Flags().StringVar(&address, "address", "", "Dirección")
	update.Flags().StringVar(&phone, "phone", "", "Teléfono")
	update.Flags().StringVar(&email, "email", "", "Email")
	update.Flags().StringVar(&website, "website", "", "Sitio web")
	update.Flags().StringVar(&photo, "photo-url", "", "URL de la foto")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Eliminar una clínica",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return actResult(a.clinics.Delete(cmd.Context(), id), a.clinics.Err())
		},
	}

	verify := &cobra.Command{
		Use:   "verify <id>",
		Short: "Marcar la clínica como verificada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return actResult(a.clinics.Verify(cmd.Context(), id), a.clinics.Err())
		},
	}

	cmd.AddCommand(list, get, update, del, verify)
	return cmd
}

// ───────────────────────── shelters ─────────────────────────

func sheltersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "shelters", Short: "Directorio de refugios"}

	var city string
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar refugios",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.shelters.Fetch(cmd.Context(), city)
			if err != nil {
				return errors.New(a.shelters.Err())
			}
			a.print(sanitized(items))
			return nil
		},
	}
	list.Flags().StringVar(&city, "city", "", "Filtrar por ciudad")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Detalle de un refugio (store-first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sh, err := a.shelters.FetchByID(cmd.Context(), id)
			if err != nil {
				return errors.New(a.shelters.Err())
			}
			a.print(sh.Sanitized())
			return nil
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

// ───────────────────────── stores ─────────────────────────

func storesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "stores", Short: "Directorio de tiendas (slug ids)"}

	var f petshops.Filters
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar tiendas",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.stores.Fetch(cmd.Context(), f)
			if err != nil {
				return errors.New(a.stores.Err())
			}
			a.print(sanitized(items))
			return nil
		},
	}
	list.Flags().StringVar(&f.City, "city", "", "Filtrar por ciudad")
	list.Flags().StringVar(&f.Plan, "plan", "", "free|pro|premium")

	get := &cobra.Command{
		Use:   "get <slug>",
		Short: "Detalle de una tienda (store-first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.stores.FetchBySlug(cmd.Context(), args[0])
			if err != nil {
				return errors.New(a.stores.Err())
			}
			a.print(p.Sanitized())
			return nil
		},
	}

	deactivate := &cobra.Command{
		Use:   "deactivate <slug>",
		Short: "Dar de baja una tienda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return actResult(a.stores.Deactivate(cmd.Context(), args[0]), a.stores.Err())
		},
	}

	cmd.AddCommand(list, get, deactivate)
	return cmd
}

// ───────────────────────── adoptions ─────────────────────────

func adoptionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "adoptions", Short: "Listados de adopción"}

	var f adoptions.Filters
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar adopciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.adoptions.Fetch(cmd.Context(), f)
			if err != nil {
				return errors.New(a.adoptions.Err())
			}
			a.print(sanitized(items))
			return nil
		},
	}
	list.Flags().StringVar(&f.Species, "species", "", "dog|cat|...")
	list.Flags().StringVar(&f.City, "city", "", "Filtrar por ciudad")
	list.Flags().StringVar(&f.Status, "status", "", "available|pending|adopted")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Detalle de un listado (store-first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			l, err := a.adoptions.FetchByID(cmd.Context(), id)
			if err != nil {
				return errors.New(a.adoptions.Err())
			}
			a.print(l.Sanitized())
			return nil
		},
	}

	adopt := &cobra.Command{
		Use:   "adopt <id>",
		Short: "Marcar el listado como adoptado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return actResult(a.adoptions.MarkAdopted(cmd.Context(), id), a.adoptions.Err())
		},
	}

	status := &cobra.Command{
		Use:   "status <id>",
		Short: "Status best-effort del listado (cacheado, nunca falla)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			st := a.adoptions.PollStatus(cmd.Context(), id)
			if st == "" {
				st = "unknown"
			}
			fmt.Println(st)
			return nil
		},
	}

	cmd.AddCommand(list, get, adopt, status)
	return cmd
}

// ───────────────────────── donations ─────────────────────────

func donationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "donations", Short: "Donaciones a refugios"}

	var shelterID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar donaciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.donations.Fetch(cmd.Context(), shelterID)
			if err != nil {
				return errors.New(a.donations.Err())
			}
			a.print(items)
			return nil
		},
	}
	list.Flags().Int64Var(&shelterID, "shelter", 0, "Filtrar por refugio")

	var in donations.CreateInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Registrar una donación",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.donations.Create(cmd.Context(), in)
			if err != nil {
				return errors.New(a.donations.Err())
			}
			a.print(d)
			return nil
		},
	}
	create.Flags().Int64Var(&in.ShelterID, "shelter", 0, "ID del refugio (requerido)")
	create.Flags().Int64Var(&in.AmountCents, "amount", 0, "Monto en centavos (requerido)")
	create.Flags().StringVar(&in.Currency, "currency", "", "Moneda (default COP)")
	create.Flags().StringVar(&in.Donor, "donor", "", "Nombre del donante")
	create.Flags().StringVar(&in.Message, "message", "", "Mensaje para el refugio")

	cmd.AddCommand(list, create)
	return cmd
}

// ───────────────────────── transactions ─────────────────────────

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "transactions", Short: "Transacciones (solo lectura)"}

	var f transactions.Filters
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar transacciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.transactions.Fetch(cmd.Context(), f)
			if err != nil {
				return errors.New(a.transactions.Err())
			}
			a.print(items)
			return nil
		},
	}
	list.Flags().StringVar(&f.Status, "status", "", "pending|completed|refunded|failed")
	list.Flags().Int64Var(&f.UserID, "user", 0, "Filtrar por usuario")
	list.Flags().StringVar(&f.From, "from", "", "Desde (YYYY-MM-DD)")
	list.Flags().StringVar(&f.To, "to", "", "Hasta (YYYY-MM-DD)")

	cmd.AddCommand(list)
	return cmd
}

// ───────────────────────── sync ─────────────────────────

// syncCmd precalienta los directorios públicos en paralelo. Útil antes de
// una sesión interactiva: los get posteriores pegan al store, no a la red.
func syncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Precalentar clínicas, refugios y tiendas en paralelo",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				_, err := a.clinics.Fetch(ctx, clinics.Filters{})
				return err
			})
			g.Go(func() error {
				_, err := a.shelters.Fetch(ctx, "")
				return err
			})
			g.Go(func() error {
				_, err := a.stores.Fetch(ctx, petshops.Filters{})
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}
			fmt.Printf("clinics=%d shelters=%d stores=%d\n",
				a.clinics.Store().Len(), a.shelters.Store().Len(), a.stores.Store().Len())
			return nil
		},
	}
}

// ───────────────────────── token ─────────────────────────

func tokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "token", Short: "Utilidades del token configurado"}

	inspect := &cobra.Command{
		Use:   "inspect",
		Short: "Decodificar el token (sin verificar firma) y mostrar sub/exp",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.API.Token == "" {
				return errors.New("no hay token configurado (--token o PATITAS_API_TOKEN)")
			}
			info, err := auth.Inspect(a.cfg.API.Token)
			if err != nil {
				return err
			}
			if info == nil {
				fmt.Println("token opaco (no es un JWT)")
				return nil
			}
			a.print(map[string]any{
				"subject":    info.Subject,
				"expires_at": info.ExpiresAt,
				"expired":    info.Expired,
			})
			return nil
		},
	}

	cmd.AddCommand(inspect)
	return cmd
}
