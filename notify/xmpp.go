package notify

import (
	"crypto/tls"
	"errors"
	"strings"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"
)

var ErrMissingConfig = errors.New("missing xmpp config")

type (
	// Config of the xmpp account sending the advisories.
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	Xmpp struct {
		Config Config
	}
)

func (c Config) Enabled() bool {
	return len(c.Jid) > 0 && len(c.Password) > 0 && len(c.To) > 0
}

func serverName(jid string) string {
	parts := strings.SplitN(jid, "@", 2)
	if len(parts) < 2 {
		return jid
	}
	return parts[1]
}

func (x Xmpp) Send(message string) error {

	if !x.Config.Enabled() {
		log.Warn("missing xmpp config")
		return ErrMissingConfig
	}

	host := x.Config.Host
	if len(host) == 0 {
		host = serverName(x.Config.Jid)
	}

	xmpp.DefaultConfig = tls.Config{
		ServerName: strings.Split(host, ":")[0],
	}

	options := xmpp.Options{
		Host:          host,
		User:          x.Config.Jid,
		Password:      x.Config.Password,
		NoTLS:         true,
		StartTLS:      true,
		Debug:         false,
		Session:       false,
		Status:        "xa",
		StatusMessage: "power budget advisories",
	}

	log.WithField("host", host).Debug("create xmpp client")
	talk, err := options.NewClient()
	if err != nil {
		log.WithError(err).Error("Error creating xmpp client")
		return err
	}
	defer talk.Close()

	_, err = talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message})
	return err
}
