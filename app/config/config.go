package config

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	AppConfigFileName = "app"
	ConfigDir         = "config"
	DataDir           = "data"
)

var appConfigTemplate = template.Must(template.New("appConfigFileTemplate").Parse(`# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

[base]
# Genesis file with the initial assets and balances
genesisFile = "{{ .BaseConfig.GenesisFile }}"

[upgrade]
# Block time (unix seconds) from which separate taker fees are active
makerTakerFeeTime = {{ .UpgradeConfig.MakerTakerFeeTime }}

[store]
# Backend of the state database, goleveldb or memdb
dbBackend = "{{ .StoreConfig.DBBackend }}"
# Number of iavl nodes cached in memory for historical balance queries
cacheSize = {{ .StoreConfig.CacheSize }}
# Which committed versions to keep: syncable, everything or nothing
pruning = "{{ .StoreConfig.Pruning }}"

[publication]
# configurations about where to publish, kafka or local
publishKafka = {{ .PublicationConfig.PublishKafka }}
publishLocal = {{ .PublicationConfig.PublishLocal }}
# max size in megabytes of marketdata json file
localMaxSize = {{ .PublicationConfig.LocalMaxSize }}
# max days of marketdata json files to keep
localMaxAge = {{ .PublicationConfig.LocalMaxAge }}
publicationChannelSize = {{ .PublicationConfig.PublicationChannelSize }}
# max messages per second sent to kafka, 0 means unlimited
kafkaRateLimit = {{ .PublicationConfig.KafkaRateLimit }}
kafkaVersion = "{{ .PublicationConfig.KafkaVersion }}"

# whether to publish fills together with their maker and taker fees
publishOrderUpdates = {{ .PublicationConfig.PublishOrderUpdates }}
orderUpdatesTopic = "{{ .PublicationConfig.OrderUpdatesTopic }}"
orderUpdatesKafka = "{{ .PublicationConfig.OrderUpdatesKafka }}"

# whether to publish the fees accumulated by issuers in each block
publishBlockFee = {{ .PublicationConfig.PublishBlockFee }}
blockFeeTopic = "{{ .PublicationConfig.BlockFeeTopic }}"
blockFeeKafka = "{{ .PublicationConfig.BlockFeeKafka }}"

[api]
enabled = {{ .APIConfig.Enabled }}
serverAddress = "{{ .APIConfig.ServerAddress }}"
maxDepthLevels = {{ .APIConfig.MaxDepthLevels }}

[log]
# Log level: debug, info, error or none
logLevel = "{{ .LogConfig.LogLevel }}"
# Write logs to console, otherwise to logFilePath
logToConsole = {{ .LogConfig.LogToConsole }}
# Log file path relative to home path
logFilePath = "{{ .LogConfig.LogFilePath }}"
# Rotate the log file once it reaches this size in megabytes
logFileMaxSize = {{ .LogConfig.LogFileMaxSize }}
logFileMaxBackups = {{ .LogConfig.LogFileMaxBackups }}
`))

type LedgerContext struct {
	Config *LedgerConfig
	Logger log.Logger
}

func NewDefaultContext() *LedgerContext {
	return &LedgerContext{
		Config: DefaultLedgerConfig(),
		Logger: log.NewTMLogger(log.NewSyncWriter(os.Stdout)),
	}
}

type LedgerConfig struct {
	*BaseConfig        `mapstructure:"base"`
	*UpgradeConfig     `mapstructure:"upgrade"`
	*StoreConfig       `mapstructure:"store"`
	*PublicationConfig `mapstructure:"publication"`
	*APIConfig         `mapstructure:"api"`
	*LogConfig         `mapstructure:"log"`
}

func DefaultLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		BaseConfig:        defaultBaseConfig(),
		UpgradeConfig:     defaultUpgradeConfig(),
		StoreConfig:       defaultStoreConfig(),
		PublicationConfig: defaultPublicationConfig(),
		APIConfig:         defaultAPIConfig(),
		LogConfig:         defaultLogConfig(),
	}
}

type BaseConfig struct {
	HomeDir     string `mapstructure:"home"`
	GenesisFile string `mapstructure:"genesisFile"`
}

func defaultBaseConfig() *BaseConfig {
	return &BaseConfig{
		GenesisFile: "config/genesis.json",
	}
}

type UpgradeConfig struct {
	// unix seconds, 0 means active from genesis
	MakerTakerFeeTime int64 `mapstructure:"makerTakerFeeTime"`
}

func defaultUpgradeConfig() *UpgradeConfig {
	return &UpgradeConfig{
		MakerTakerFeeTime: 0,
	}
}

type StoreConfig struct {
	DBBackend string `mapstructure:"dbBackend"`
	CacheSize int    `mapstructure:"cacheSize"`
	Pruning   string `mapstructure:"pruning"`
}

func defaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		DBBackend: "goleveldb",
		CacheSize: 10000,
		Pruning:   "syncable",
	}
}

// PruningStrategy maps the pruning option to the strategy of the state store.
func (c *StoreConfig) PruningStrategy() (sdk.PruningStrategy, error) {
	switch c.Pruning {
	case "nothing":
		return sdk.PruneNothing, nil
	case "everything":
		return sdk.PruneEverything, nil
	case "syncable", "":
		return sdk.PruneSyncable, nil
	default:
		return sdk.PruneSyncable, errors.Errorf("unknown pruning strategy %q", c.Pruning)
	}
}

type PublicationConfig struct {
	PublishKafka           bool   `mapstructure:"publishKafka"`
	PublishLocal           bool   `mapstructure:"publishLocal"`
	LocalMaxSize           int    `mapstructure:"localMaxSize"`
	LocalMaxAge            int    `mapstructure:"localMaxAge"`
	PublicationChannelSize int    `mapstructure:"publicationChannelSize"`
	KafkaRateLimit         int    `mapstructure:"kafkaRateLimit"`
	KafkaVersion           string `mapstructure:"kafkaVersion"`

	PublishOrderUpdates bool   `mapstructure:"publishOrderUpdates"`
	OrderUpdatesTopic   string `mapstructure:"orderUpdatesTopic"`
	OrderUpdatesKafka   string `mapstructure:"orderUpdatesKafka"`

	PublishBlockFee bool   `mapstructure:"publishBlockFee"`
	BlockFeeTopic   string `mapstructure:"blockFeeTopic"`
	BlockFeeKafka   string `mapstructure:"blockFeeKafka"`
}

func defaultPublicationConfig() *PublicationConfig {
	return &PublicationConfig{
		PublishKafka:           false,
		PublishLocal:           false,
		LocalMaxSize:           1024,
		LocalMaxAge:            7,
		PublicationChannelSize: 10000,
		KafkaRateLimit:         0,
		KafkaVersion:           "2.1.0",

		PublishOrderUpdates: false,
		OrderUpdatesTopic:   "orders",
		OrderUpdatesKafka:   "127.0.0.1:9092",

		PublishBlockFee: false,
		BlockFeeTopic:   "accounts",
		BlockFeeKafka:   "127.0.0.1:9092",
	}
}

func (pubCfg PublicationConfig) ShouldPublishAny() bool {
	return pubCfg.PublishOrderUpdates || pubCfg.PublishBlockFee
}

type APIConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServerAddress  string `mapstructure:"serverAddress"`
	MaxDepthLevels int    `mapstructure:"maxDepthLevels"`
}

func defaultAPIConfig() *APIConfig {
	return &APIConfig{
		Enabled:        true,
		ServerAddress:  "127.0.0.1:8080",
		MaxDepthLevels: 100,
	}
}

type LogConfig struct {
	LogLevel          string `mapstructure:"logLevel"`
	LogToConsole      bool   `mapstructure:"logToConsole"`
	LogFilePath       string `mapstructure:"logFilePath"`
	LogFileMaxSize    int    `mapstructure:"logFileMaxSize"`
	LogFileMaxBackups int    `mapstructure:"logFileMaxBackups"`
}

func defaultLogConfig() *LogConfig {
	return &LogConfig{
		LogLevel:          "info",
		LogToConsole:      true,
		LogFilePath:       "ledgerd.log",
		LogFileMaxSize:    100,
		LogFileMaxBackups: 10,
	}
}

// ParseConfig reads <home>/config/app.toml on top of the defaults. A missing file keeps the defaults.
func (context *LedgerContext) ParseConfig(home string) (*LedgerConfig, error) {
	viper.SetConfigName(AppConfigFileName)
	viper.AddConfigPath(filepath.Join(home, ConfigDir))
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read app config")
		}
	}
	if err := viper.Unmarshal(context.Config); err != nil {
		return nil, errors.Wrap(err, "failed to parse app config")
	}
	context.Config.HomeDir = home
	return context.Config, nil
}

// WriteConfigFile renders config into the app.toml template.
func WriteConfigFile(configFilePath string, config *LedgerConfig) error {
	var buffer bytes.Buffer
	if err := appConfigTemplate.Execute(&buffer, config); err != nil {
		return errors.Wrap(err, "failed to render app config")
	}
	if err := os.MkdirAll(filepath.Dir(configFilePath), 0700); err != nil {
		return err
	}
	return os.WriteFile(configFilePath, buffer.Bytes(), 0644)
}

// ResolvePath makes a configured path absolute against the home directory.
func (config *LedgerConfig) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(config.HomeDir, path)
}
