package log

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é uma interface que define os métodos de log
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

type contextKey string

const (
	CorrelationIDKey contextKey = "correlation_id"
	userIDKey        contextKey = "user_id"
	businessIDKey    contextKey = "business_id"
)

const correlationIDField = "correlation_id"

// campos mantidos em desenvolvimento; o resto é descartado para deixar o console legível
var devFields = map[string]bool{
	correlationIDField: true,
	"method":           true,
	"path":             true,
	"status_code":      true,
	"duration_ms":      true,
	"error":            true,
	"job":              true,
}

type logger struct {
	entry *logrus.Entry
}

// L é uma instância global de Logger para uso direto
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

var environment = os.Getenv("APP_ENV")

// SetEnvironment define o ambiente lido da configuração
func SetEnvironment(env string) {
	environment = env
}

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	return environment == "" || environment == "development" || environment == "dev"
}

// Configure aplica nível e formato do logrus conforme o ambiente
func Configure(level, env string) {
	SetEnvironment(env)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	if !IsDevelopment() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
}

// SetupTestLogger configura um logger simplificado para testes
func SetupTestLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.DebugLevel)

	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
}

func keepField(key string) bool {
	return devFields[key] || strings.HasPrefix(key, "user_") || strings.HasPrefix(key, "business_")
}

func (l *logger) WithField(key string, value interface{}) Logger {
	if IsDevelopment() && !keepField(key) {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	if !IsDevelopment() {
		return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
	}

	relevant := make(logrus.Fields)
	for k, v := range fields {
		if keepField(k) {
			relevant[k] = v
		}
	}
	if len(relevant) == 0 {
		return l
	}
	return &logger{entry: l.entry.WithFields(relevant)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

// WithContext extrai correlation id, usuário e negócio do contexto
func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	fields := Fields{}
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		fields[correlationIDField] = correlationID
	}
	if userID, ok := ctx.Value(userIDKey).(int); ok {
		fields["user_id"] = userID
	}
	if businessID, ok := ctx.Value(businessIDKey).(string); ok && businessID != "" {
		fields["business_id"] = businessID
	}

	if len(fields) == 0 {
		return l
	}
	return l.WithFields(fields)
}

func (l *logger) Debug(args ...interface{}) { l.entry.Debug(args...) }

func (l *logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }

func (l *logger) Info(args ...interface{}) { l.entry.Info(args...) }

func (l *logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l *logger) Warn(args ...interface{}) { l.entry.Warn(args...) }

func (l *logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *logger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *logger) Fatal(args ...interface{}) { l.entry.Fatal(args...) }

func (l *logger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }

// WithCorrelationID adiciona um ID de correlação ao contexto, reaproveitando o recebido quando houver
func WithCorrelationID(ctx context.Context, incoming ...string) (context.Context, string) {
	correlationID := ""
	if len(incoming) > 0 {
		correlationID = strings.TrimSpace(incoming[0])
	}
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// WithUser anota o contexto com o usuário autenticado e o negócio dele
func WithUser(ctx context.Context, userID int, businessID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, businessIDKey, businessID)
}

// ForContext cria um logger com os dados de rastreio do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
