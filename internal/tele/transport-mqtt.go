package tele

import (
	"context"
	"fmt"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"
	"github.com/temoto/paystation/helpers"
	"github.com/temoto/paystation/log2"
	tele_config "github.com/temoto/paystation/tele/config"
)

const (
	defaultKeepalive   = 60 * time.Second
	defaultPingTimeout = 30 * time.Second
	publishTimeout     = 10 * time.Second
)

func TopicPrefix(vmid int32) string                  { return fmt.Sprintf("ps%d", vmid) }
func TopicConnect(vmid int32) string                 { return TopicPrefix(vmid) + "/c" }
func TopicCommand(vmid int32) string                 { return TopicPrefix(vmid) + "/r/c" }
func TopicTelemetry(vmid int32) string               { return TopicPrefix(vmid) + "/w/1t" }
func TopicResponse(vmid int32, suffix string) string { return TopicPrefix(vmid) + "/" + suffix }

type transportMqtt struct {
	log       *log2.Log
	onCommand func([]byte) bool
	m         mqtt.Client
	vmId      int32

	topicConnect   string
	topicTelemetry string
	topicCommand   string
}

func (self *transportMqtt) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, onCommand CommandCallback) error {
	self.log = log
	if _, err := url.ParseRequestURI(teleConfig.MqttBroker); err != nil {
		return errors.Annotatef(err, "tele mqtt_broker=%s", teleConfig.MqttBroker)
	}
	mqtt.ERROR = log
	mqtt.CRITICAL = log
	mqtt.WARN = log
	if teleConfig.MqttLogDebug {
		mqtt.DEBUG = log
	}

	self.vmId = int32(teleConfig.VmId)
	clientId := TopicPrefix(self.vmId)
	credFun := func() (string, string) {
		return clientId, teleConfig.MqttPassword
	}
	self.onCommand = func(payload []byte) bool {
		return onCommand(ctx, payload)
	}
	self.topicConnect = TopicConnect(self.vmId)
	self.topicTelemetry = TopicTelemetry(self.vmId)
	self.topicCommand = TopicCommand(self.vmId)
	keepAlive := helpers.IntSecondDefault(teleConfig.KeepaliveSec, defaultKeepalive)
	pingTimeout := helpers.IntSecondDefault(teleConfig.PingTimeoutSec, defaultPingTimeout)

	var store mqtt.Store = mqtt.NewMemoryStore()
	if teleConfig.StorePath != "" {
		store = mqtt.NewFileStore(teleConfig.StorePath)
	}
	mopt := mqtt.NewClientOptions().
		AddBroker(teleConfig.MqttBroker).
		SetBinaryWill(self.topicConnect, []byte{0x00}, 1, true).
		SetCleanSession(false).
		SetClientID(clientId).
		SetCredentialsProvider(credFun).
		SetDefaultPublishHandler(self.messageHandler).
		SetKeepAlive(keepAlive).
		SetPingTimeout(pingTimeout).
		SetOrderMatters(false).
		SetResumeSubs(true).
		SetStore(store).
		SetConnectRetryInterval(keepAlive / 2).
		SetOnConnectHandler(self.onConnectHandler).
		SetConnectionLostHandler(self.connectLostHandler).
		SetConnectRetry(true)
	self.m = mqtt.NewClient(mopt)
	// with ConnectRetry token completes only on success, network errors are not reported here
	self.m.Connect()
	return nil
}

func (self *transportMqtt) Close() {
	if self.m == nil {
		return
	}
	self.log.Infof("mqtt disconnect")
	if self.m.IsConnectionOpen() {
		self.m.Publish(self.topicConnect, 1, true, []byte{0x00}).WaitTimeout(publishTimeout)
	}
	self.m.Disconnect(250)
}

func (self *transportMqtt) SendTelemetry(payload []byte) bool {
	return self.publish(self.topicTelemetry, false, payload)
}

func (self *transportMqtt) SendCommandResponse(topicSuffix string, payload []byte) bool {
	topic := TopicResponse(self.vmId, topicSuffix)
	self.log.Debugf("mqtt publish command response to topic=%s", topic)
	return self.publish(topic, false, payload)
}

func (self *transportMqtt) publish(topic string, retain bool, payload []byte) bool {
	if !self.m.IsConnectionOpen() {
		return false
	}
	token := self.m.Publish(topic, 1, retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		self.log.Errorf("tele: mqtt publish topic=%s timeout", topic)
		return false
	}
	if err := token.Error(); err != nil {
		self.log.Error(errors.Annotatef(err, "tele: mqtt publish topic=%s", topic))
		return false
	}
	return true
}

func (self *transportMqtt) messageHandler(c mqtt.Client, msg mqtt.Message) {
	if msg.Topic() != self.topicCommand {
		self.log.Errorf("tele: mqtt received message in unexpected topic=%s payload=%x", msg.Topic(), msg.Payload())
		return
	}
	payload := msg.Payload()
	self.log.Debugf("mqtt command payload=%x", payload)
	self.onCommand(payload)
}

func (self *transportMqtt) connectLostHandler(c mqtt.Client, err error) {
	self.log.Infof("mqtt connection lost err=%v", err)
}

func (self *transportMqtt) onConnectHandler(c mqtt.Client) {
	self.log.Infof("mqtt connect")
	if token := c.Subscribe(self.topicCommand, 1, nil); token.Wait() && token.Error() != nil {
		self.log.Errorf("mqtt subscribe topic=%s err=%v", self.topicCommand, token.Error())
		return
	}
	c.Publish(self.topicConnect, 1, true, []byte{0x01})
}
