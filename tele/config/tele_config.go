// Separate package is workaround to import cycles.
package tele_config

type Config struct { //nolint:maligned
	Enabled        bool   `hcl:"enable"`
	VmId           int    `hcl:"vm_id"`
	LogDebug       bool   `hcl:"log_debug"`
	KeepaliveSec   int    `hcl:"keepalive_sec"`
	PingTimeoutSec int    `hcl:"ping_timeout_sec"`
	MqttBroker     string `hcl:"mqtt_broker"`
	MqttLogDebug   bool   `hcl:"mqtt_log_debug"`
	MqttPassword   string `hcl:"mqtt_password"` // secret
	PersistPath    string `hcl:"persist_path"`
	// paho in-flight message store, empty = memory
	StorePath string `hcl:"store_path"`

	BuildVersion string `hcl:"-"`
}
