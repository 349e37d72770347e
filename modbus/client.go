package modbus

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/simonvetter/modbus"
)

// Client provides an interface onto Modbus devices.
// It hides the underlying open source modbus library and adds lazy connection
// and reconnection logic. Register values are exposed as 16-bit words, which
// is what the 7M.24 decoders consume.
type Client struct {
	host   string
	unitID uint8

	subClient       *modbus.ModbusClient // the raw client of the underlying modbus library we are using
	shouldReconnect bool                 // when true, the subClient is 'dirty' and will be re-created next time a read call is made
	logger          *slog.Logger
}

func NewClient(host string, unitID uint8) (*Client, error) {
	client := &Client{
		host:            host,
		unitID:          unitID,
		shouldReconnect: true, // shouldReconnect is marked as true from instantiation so the connection will be made lazily on the first read
		logger:          slog.Default().With("host", host),
	}

	return client, nil
}

// ReadInputRegisters reads `qty` input registers (function code 4) starting
// at `addr` and returns them as words, high byte first within each word.
func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	err := c.reconnectIfNeccesary()
	if err != nil {
		return nil, fmt.Errorf("reconnect: %w", err)
	}

	words, err := c.subClient.ReadRegisters(addr, qty, modbus.INPUT_REGISTER)
	if err != nil {
		c.setShouldReconnect()
		return nil, fmt.Errorf("read input registers %d: %w", addr, err)
	}

	return words, nil
}

// createSubClient creates the open-source modbus library client with sensible
// defaults and connects to the host.
func (c *Client) createSubClient() error {
	subClient, err := modbus.NewClient(&modbus.ClientConfiguration{
		URL:     fmt.Sprintf("tcp://%s", c.host),
		Timeout: 2 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create modbus client: %w", err)
	}

	err = subClient.SetUnitId(c.unitID)
	if err != nil {
		return fmt.Errorf("set unit id: %w", err)
	}

	err = subClient.Open()
	if err != nil {
		return fmt.Errorf("open modbus client: %w", err)
	}

	c.subClient = subClient

	return nil
}

// setShouldReconnect is called when there has been an error with the modbus
// connection that should trigger a re-connect.
func (c *Client) setShouldReconnect() {
	c.shouldReconnect = true
}

// reconnectIfNeccesary will close the old connection and reconnect if there
// have been problems with the connection.
func (c *Client) reconnectIfNeccesary() error {
	if !c.shouldReconnect {
		return nil
	}

	// Ignore errors from Close() as we will continue with the reconnect anyway and start a new connection.
	if c.subClient != nil {
		c.subClient.Close()
	}

	err := c.createSubClient()
	if err != nil {
		return err
	}

	c.shouldReconnect = false

	c.logger.Info("Connected modbus client")

	return nil
}
