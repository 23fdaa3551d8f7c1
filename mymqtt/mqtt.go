package mymqtt

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-logr/logr"
)

const PRIVATE_PORT = 1883

type Client struct {
	Id        string      // MQTT client_id (this client)
	mqtt      mqtt.Client // MQTT stack
	brokerUrl *url.URL    // MQTT broker to connect to
	log       logr.Logger // Logger to use
}

// NewClientE prepares a client for the given broker, given as host or
// host:port. The connection is established lazily on first publish.
func NewClientE(log logr.Logger, broker string) (*Client, error) {
	clientId := fmt.Sprintf("%v%v", path.Base(os.Args[0]), os.Getpid())
	log.V(1).Info("Initializing MQTT client", "client_id", clientId, "broker", broker)

	brokerUrl, err := brokerUrlE(broker)
	if err != nil {
		log.Error(err, "Invalid MQTT broker", "broker", broker)
		return nil, err
	}

	opts := mqtt.NewClientOptions()
	opts.SetClientID(clientId)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.AddBroker(brokerUrl.String())
	opts.Servers = []*url.URL{brokerUrl}

	c := Client{
		Id:        clientId,
		mqtt:      mqtt.NewClient(opts),
		brokerUrl: brokerUrl,
		log:       log,
	}
	return &c, nil
}

func brokerUrlE(broker string) (*url.URL, error) {
	p := strings.Split(broker, ":")
	host := p[0]
	if host == "" {
		return nil, fmt.Errorf("empty MQTT broker host")
	}
	port := PRIVATE_PORT
	if len(p) > 1 {
		var err error
		port, err = strconv.Atoi(p[1])
		if err != nil {
			return nil, err
		}
	}
	return &url.URL{
		Scheme: "tcp",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}, nil
}

func (c *Client) connect() error {
	if c.mqtt.IsConnected() {
		return nil
	}

	token := c.mqtt.Connect()
	for !token.WaitTimeout(3 * time.Second) {
		c.log.Info("MQTT client trying to connect as", "client_id", c.Id)
	}
	if err := token.Error(); err != nil {
		c.log.Error(err, "MQTT client failed to connect", "client_id", c.Id)
		return err
	}
	c.log.V(1).Info("MQTT client connected", "client_id", c.Id)
	return nil
}

func (c *Client) BrokerUrl() *url.URL {
	return c.brokerUrl
}

func (c *Client) Publish(topic string, msg []byte) error {
	if err := c.connect(); err != nil {
		return err
	}
	token := c.mqtt.Publish(topic, 0 /*qos*/, false /*retained*/, msg)
	token.Wait()
	return token.Error()
}

func (c *Client) Close() {
	if c.mqtt.IsConnected() {
		c.mqtt.Disconnect(250 /*ms*/)
	}
}
