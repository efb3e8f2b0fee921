// Asset commands manage the target inventory and per-asset services.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

var (
	assetType        string
	assetIPs         string
	assetHostnames   string
	assetOS          string
	assetTags        string
	assetDescription string
	assetStatus      string
	assetNotes       string

	assetListIdentifier string
	assetListIP         string
	assetListHostname   string
	assetListTag        string
	assetListService    string
	assetListPortProto  string

	servicePort     int
	serviceProtocol string
	serviceState    string
	serviceName     string
	serviceProduct  string
	serviceVersion  string
	serviceBanner   string
	serviceNotes    string
	serviceID       int
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage target assets",
}

var assetAddCmd = &cobra.Command{
	Use:   "add IDENTIFIER",
	Short: "Add an asset to the inventory",
	Long: `Add records an asset keyed by its primary identifier (IP, hostname,
URL, ...). The identifier must be unique per project. The asset type is
inferred from the identifier shape when not given.

Example:
  fieldcase asset add 10.0.0.5 --os "Ubuntu 22.04" --tags production,dmz
  fieldcase asset add blog.example.com --type Hostname --status Active_InScope`,
	Args: cobra.ExactArgs(1),
	RunE: runAssetAdd,
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assets",
	Long: `List shows assets ordered by primary identifier. The --port flag
takes "80", "80/tcp", or "/udp" style tokens.

Example:
  fieldcase asset list --tag Production
  fieldcase asset list --port 443/tcp`,
	Args: cobra.NoArgs,
	RunE: runAssetList,
}

var assetGetCmd = &cobra.Command{
	Use:   "get REF",
	Short: "Show one asset by ID or identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetGet,
}

var assetUpdateCmd = &cobra.Command{
	Use:   "update REF",
	Short: "Update fields of an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetUpdate,
}

var assetRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm"},
	Short:   "Remove an asset",
	Args:    cobra.ExactArgs(1),
	RunE:    runAssetRemove,
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage services on an asset",
}

var serviceAddCmd = &cobra.Command{
	Use:   "add REF",
	Short: "Add a service to an asset",
	Long: `Add records a network service on the asset referenced by ID or
identifier. The (port, protocol) pair must be unique within the asset.
Protocol defaults to tcp, state to open.

Example:
  fieldcase asset service add 10.0.0.5 --port 443 --name https --product nginx
  fieldcase asset service add blog.example.com --port 53 --protocol udp --name domain`,
	Args: cobra.ExactArgs(1),
	RunE: runServiceAdd,
}

var serviceUpdateCmd = &cobra.Command{
	Use:   "update REF",
	Short: "Update a service on an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceUpdate,
}

var serviceRemoveCmd = &cobra.Command{
	Use:     "remove REF",
	Aliases: []string{"rm"},
	Short:   "Remove a service from an asset",
	Args:    cobra.ExactArgs(1),
	RunE:    runServiceRemove,
}

func init() {
	assetAddCmd.Flags().StringVar(&assetType, "type", "", "asset type (HostIP, Hostname, WebsiteURL, ...)")
	assetAddCmd.Flags().StringVar(&assetIPs, "ips", "", "comma-separated IP addresses")
	assetAddCmd.Flags().StringVar(&assetHostnames, "hostnames", "", "comma-separated hostnames")
	assetAddCmd.Flags().StringVar(&assetOS, "os", "", "operating system details")
	assetAddCmd.Flags().StringVar(&assetTags, "tags", "", "comma-separated environment tags")
	assetAddCmd.Flags().StringVar(&assetDescription, "description", "", "free-form description")
	assetAddCmd.Flags().StringVar(&assetStatus, "status", "", "asset status (default: Investigating)")
	assetAddCmd.Flags().StringVar(&assetNotes, "notes", "", "free-form notes")

	assetListCmd.Flags().StringVar(&assetListIdentifier, "identifier", "", "filter by primary identifier substring")
	assetListCmd.Flags().StringVar(&assetListIP, "ip", "", "filter by IP address")
	assetListCmd.Flags().StringVar(&assetListHostname, "hostname", "", "filter by hostname")
	assetListCmd.Flags().StringVar(&assetListTag, "tag", "", "filter by environment tag")
	assetListCmd.Flags().StringVar(&assetOS, "os", "", "filter by OS details substring")
	assetListCmd.Flags().StringVar(&assetListService, "service", "", "filter by service name")
	assetListCmd.Flags().StringVar(&assetListPortProto, "port", "", "filter by port/protocol token")
	assetListCmd.Flags().StringVar(&assetStatus, "status", "", "filter by status")

	assetUpdateCmd.Flags().StringVar(&assetType, "type", "", "new asset type")
	assetUpdateCmd.Flags().StringVar(&assetIPs, "ips", "", "comma-separated IP addresses (replaces existing)")
	assetUpdateCmd.Flags().StringVar(&assetHostnames, "hostnames", "", "comma-separated hostnames (replaces existing)")
	assetUpdateCmd.Flags().StringVar(&assetOS, "os", "", "new operating system details")
	assetUpdateCmd.Flags().StringVar(&assetTags, "tags", "", "comma-separated environment tags (replaces existing)")
	assetUpdateCmd.Flags().StringVar(&assetDescription, "description", "", "new description")
	assetUpdateCmd.Flags().StringVar(&assetStatus, "status", "", "new status")
	assetUpdateCmd.Flags().StringVar(&assetNotes, "notes", "", "new notes")

	serviceAddCmd.Flags().IntVar(&servicePort, "port", 0, "port number (required)")
	serviceAddCmd.Flags().StringVar(&serviceProtocol, "protocol", "", "protocol (tcp or udp, default: tcp)")
	serviceAddCmd.Flags().StringVar(&serviceState, "state", "", "state (open, closed, filtered, unknown)")
	serviceAddCmd.Flags().StringVar(&serviceName, "name", "", "service name (default: Unknown)")
	serviceAddCmd.Flags().StringVar(&serviceProduct, "product", "", "product")
	serviceAddCmd.Flags().StringVar(&serviceVersion, "version", "", "product version")
	serviceAddCmd.Flags().StringVar(&serviceBanner, "banner", "", "service banner")
	serviceAddCmd.Flags().StringVar(&serviceNotes, "notes", "", "free-form notes")
	_ = serviceAddCmd.MarkFlagRequired("port")

	serviceUpdateCmd.Flags().IntVar(&serviceID, "id", 0, "service ID on the asset (required)")
	serviceUpdateCmd.Flags().IntVar(&servicePort, "port", 0, "new port number")
	serviceUpdateCmd.Flags().StringVar(&serviceProtocol, "protocol", "", "new protocol")
	serviceUpdateCmd.Flags().StringVar(&serviceState, "state", "", "new state")
	serviceUpdateCmd.Flags().StringVar(&serviceName, "name", "", "new service name")
	serviceUpdateCmd.Flags().StringVar(&serviceProduct, "product", "", "new product")
	serviceUpdateCmd.Flags().StringVar(&serviceVersion, "version", "", "new version")
	serviceUpdateCmd.Flags().StringVar(&serviceBanner, "banner", "", "new banner")
	serviceUpdateCmd.Flags().StringVar(&serviceNotes, "notes", "", "new notes")
	_ = serviceUpdateCmd.MarkFlagRequired("id")

	serviceRemoveCmd.Flags().IntVar(&serviceID, "id", 0, "service ID on the asset (required)")
	_ = serviceRemoveCmd.MarkFlagRequired("id")

	serviceCmd.AddCommand(serviceAddCmd)
	serviceCmd.AddCommand(serviceUpdateCmd)
	serviceCmd.AddCommand(serviceRemoveCmd)

	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetGetCmd)
	assetCmd.AddCommand(assetUpdateCmd)
	assetCmd.AddCommand(assetRemoveCmd)
	assetCmd.AddCommand(serviceCmd)
}

func runAssetAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	asset, err := s.AddAsset(types.Asset{
		Type:              assetType,
		PrimaryIdentifier: args[0],
		IPAddresses:       splitCSV(assetIPs),
		Hostnames:         splitCSV(assetHostnames),
		OSDetails:         assetOS,
		EnvironmentTags:   splitCSV(assetTags),
		Description:       assetDescription,
		Status:            assetStatus,
		Notes:             assetNotes,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(asset)
	}
	fmt.Printf("Added asset %d: %s (%s)\n", asset.ID, asset.PrimaryIdentifier, asset.Type)
	return nil
}

func runAssetList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	assets := s.ListAssets(query.AssetFilter{
		Identifier:  assetListIdentifier,
		IP:          assetListIP,
		Hostname:    assetListHostname,
		Tag:         assetListTag,
		OS:          assetOS,
		ServiceName: assetListService,
		PortProto:   assetListPortProto,
	})
	if assetStatus != "" {
		assets = query.Filter(assets, func(a types.Asset) bool {
			return a.Status == assetStatus
		})
	}

	if flagJSON {
		return printJSON(assets)
	}
	if len(assets) == 0 {
		fmt.Println("No assets found")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tIDENTIFIER\tTYPE\tSTATUS\tSERVICES\tTAGS")
	for _, a := range assets {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			a.ID, a.PrimaryIdentifier, a.Type, a.Status, len(a.Services),
			strings.Join(a.EnvironmentTags, ","))
	}
	return w.Flush()
}

func runAssetGet(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	asset, err := s.FindAsset(args[0])
	if err != nil {
		return err
	}
	return printJSON(asset)
}

func runAssetUpdate(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	asset, err := s.FindAsset(args[0])
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("type") {
		asset.Type = assetType
	}
	if flags.Changed("ips") {
		asset.IPAddresses = splitCSV(assetIPs)
	}
	if flags.Changed("hostnames") {
		asset.Hostnames = splitCSV(assetHostnames)
	}
	if flags.Changed("os") {
		asset.OSDetails = assetOS
	}
	if flags.Changed("tags") {
		asset.EnvironmentTags = splitCSV(assetTags)
	}
	if flags.Changed("description") {
		asset.Description = assetDescription
	}
	if flags.Changed("status") {
		asset.Status = assetStatus
	}
	if flags.Changed("notes") {
		asset.Notes = assetNotes
	}

	updated, err := s.UpdateAsset(asset)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated asset %d\n", updated.ID)
	return nil
}

func runAssetRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	if err := s.RemoveAsset(id); err != nil {
		return err
	}
	fmt.Printf("Removed asset %d\n", id)
	return nil
}

func runServiceAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	asset, svc, err := s.AddService(args[0], types.Service{
		Port:     servicePort,
		Protocol: serviceProtocol,
		State:    serviceState,
		Name:     serviceName,
		Product:  serviceProduct,
		Version:  serviceVersion,
		Banner:   serviceBanner,
		Notes:    serviceNotes,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(asset)
	}
	fmt.Printf("Added service %d (%d/%s %s) to asset %d\n",
		svc.ID, svc.Port, svc.Protocol, svc.Name, asset.ID)
	return nil
}

func runServiceUpdate(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	asset, err := s.FindAsset(args[0])
	if err != nil {
		return err
	}
	var current *types.Service
	for i := range asset.Services {
		if asset.Services[i].ID == serviceID {
			current = &asset.Services[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("%w: service %d on asset %d", types.ErrNotFound, serviceID, asset.ID)
	}

	svc := *current
	flags := cmd.Flags()
	if flags.Changed("port") {
		svc.Port = servicePort
	}
	if flags.Changed("protocol") {
		svc.Protocol = serviceProtocol
	}
	if flags.Changed("state") {
		svc.State = serviceState
	}
	if flags.Changed("name") {
		svc.Name = serviceName
	}
	if flags.Changed("product") {
		svc.Product = serviceProduct
	}
	if flags.Changed("version") {
		svc.Version = serviceVersion
	}
	if flags.Changed("banner") {
		svc.Banner = serviceBanner
	}
	if flags.Changed("notes") {
		svc.Notes = serviceNotes
	}

	updated, err := s.UpdateService(args[0], svc)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated service %d on asset %d\n", svc.ID, updated.ID)
	return nil
}

func runServiceRemove(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	asset, err := s.RemoveService(args[0], serviceID)
	if err != nil {
		return err
	}
	fmt.Printf("Removed service %d from asset %d\n", serviceID, asset.ID)
	return nil
}
